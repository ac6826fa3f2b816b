// Package supervisor orchestrates watcher lifecycles for the CLI.
//
// It decides, per targeted profile, whether to sync in place, spawn and
// register a detached watcher, or stop one, and reports a result per profile
// so a batch over all profiles never aborts on a single failure. Only
// unrecoverable setup problems (rclone missing, registry lock unavailable)
// are returned as errors.
//
// Start and Stop hold the registry lock around each profile's
// check-spawn-register and read-signal-remove steps. Without it two
// concurrent starts for one profile could both observe "no record" and spawn
// two watchers.
package supervisor
