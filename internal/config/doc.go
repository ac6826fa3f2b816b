// Package config loads, normalizes, and validates lazycloud profile files.
//
// It resolves the profile file location (flag, LAZYCLOUD_CONFIG, or the user
// configuration directory), expands tilde paths, decodes TOML, and checks that
// every profile can be addressed by name on the command line and in the
// watcher registry. The sample configuration written by `lazycloud init` is
// embedded here so it always matches the fields the decoder understands.
//
// Sync modes are deliberately not validated: an unknown mode is reported when
// the profile is synced so the remaining profiles keep working.
package config
