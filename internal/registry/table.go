package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

const (
	recordSuffix = ".pid"
	lockFileName = ".lock"
)

var (
	// ErrNotFound reports that no record exists for a profile.
	ErrNotFound = errors.New("watcher record not found")
	// ErrInvalidRecord reports a record whose content is not a process id.
	ErrInvalidRecord = errors.New("invalid watcher record")
	// ErrInvalidID reports a profile id that cannot be used as a file name.
	ErrInvalidID = errors.New("invalid profile id")
)

// Table maps profile ids to watcher process ids using one file per profile.
type Table struct {
	dir string
}

// New returns a table rooted at dir. The directory is created on first write.
func New(dir string) *Table {
	return &Table{dir: dir}
}

// Dir returns the registry directory.
func (t *Table) Dir() string {
	return t.dir
}

func (t *Table) recordPath(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(t.dir, id+recordSuffix), nil
}

// Exists reports whether a record file is present for id.
func (t *Table) Exists(id string) bool {
	path, err := t.recordPath(id)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Create writes pid as the record for id. It does not check for an existing
// record; callers confirm !Exists(id) first.
func (t *Table) Create(id string, pid int) error {
	path, err := t.recordPath(id)
	if err != nil {
		return err
	}
	if pid < 0 {
		return fmt.Errorf("create record %q: negative pid %d", id, pid)
	}
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return fmt.Errorf("create registry directory %q: %w", t.dir, err)
	}
	value := strconv.Itoa(pid) + "\n"
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write record %q: %w", path, err)
	}
	return nil
}

// Read returns the process id recorded for id.
func (t *Table) Read(id string) (int, error) {
	path, err := t.recordPath(id)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return 0, fmt.Errorf("read record %q: %w", path, err)
	}
	raw := strings.TrimSpace(string(data))
	pid, err := strconv.ParseUint(raw, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %q is not a process id", ErrInvalidRecord, path, raw)
	}
	return int(pid), nil
}

// Remove deletes the record for id. A missing record is reported as
// ErrNotFound so callers can tell it apart from other I/O failures.
func (t *Table) Remove(id string) error {
	path, err := t.recordPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("remove record %q: %w", path, err)
	}
	return nil
}

// List returns the ids of all current records, sorted. A missing registry
// directory yields an empty list.
func (t *Table) List() ([]string, error) {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read registry directory %q: %w", t.dir, err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, recordSuffix)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Lock takes an exclusive advisory lock on the registry, blocking until it is
// available. The returned func releases it.
func (t *Table) Lock() (func() error, error) {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create registry directory %q: %w", t.dir, err)
	}
	lock := flock.New(filepath.Join(t.dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire registry lock: %w", err)
	}
	return lock.Unlock, nil
}
