// Package logging assembles the slog loggers used by lazycloud commands and
// watcher processes.
//
// Console output is colourised with tint when it goes to a terminal and falls
// back to a plain key=value layout otherwise, which is what a detached watcher
// writes to its (usually discarded) error stream. JSON output uses the same
// key names regardless of destination.
package logging
