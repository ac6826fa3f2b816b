// Package main hosts the lazycloud CLI entrypoint and command graph.
//
// The Cobra command tree loads the profile file, then hands each request to
// the supervisor: one-off syncs run in the foreground, watch starts detached
// watcher processes, and stop and status work from the pid registry. The
// hidden watch --run mode is the body of those detached processes.
package main
