// Package procctl stops watcher processes recorded in the registry.
//
// A record is only a weak reference: the process it names may have exited on
// its own, so "no such process" is an ordinary outcome that cleans up the
// stale record rather than an error. Any other delivery failure leaves the
// record in place, since it is the only handle to a process that may still be
// running.
package procctl
