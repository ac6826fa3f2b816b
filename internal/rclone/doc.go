// Package rclone maps sync profiles onto rclone invocations and runs them.
//
// Each profile mode selects a fixed command template; source, destination,
// and the profile's whitespace-split flags follow verbatim. A profile with an
// unknown mode is rejected before anything is executed so batch callers can
// report it and move on.
package rclone
