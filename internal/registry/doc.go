// Package registry persists which profiles have a watcher process and where to
// find it.
//
// The registry is a plain directory holding one "<profile>.pid" file per
// watcher, each containing the decimal process id. A record's existence is
// the only notion of "running" the package has: it never checks the process
// table, so a record may outlive the process it names. Records are written
// and removed with whole-file operations and no implicit locking; callers that
// need to serialize a check-then-write sequence take Table.Lock explicitly.
package registry
