// Package watcher implements the loop a detached watcher process runs.
//
// A Loop has two states, running and terminated, and only its context moves it
// to the second. The owning command derives that context from SIGINT/SIGTERM,
// so termination comes from outside the process; no sync result, however
// often it fails, ends the loop.
package watcher
