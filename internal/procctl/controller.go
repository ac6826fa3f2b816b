package procctl

import (
	"errors"
	"fmt"
	"os"

	"lazycloud/internal/registry"
)

// ErrProcessGone reports that the target process no longer exists.
var ErrProcessGone = errors.New("process not found")

// Outcome classifies the result of a stop request.
type Outcome int

const (
	NotRunning Outcome = iota
	Stopped
	StaleCleaned
	Failed
)

func (o Outcome) String() string {
	switch o {
	case NotRunning:
		return "not_running"
	case Stopped:
		return "stopped"
	case StaleCleaned:
		return "stale_cleaned"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result captures a stop request outcome. PID is set once the record was read.
type Result struct {
	Outcome Outcome
	PID     int
	Err     error
}

// Controller terminates recorded watcher processes.
type Controller struct {
	table     *registry.Table
	terminate func(pid int) error
}

// NewController returns a controller that signals processes recorded in table.
func NewController(table *registry.Table) *Controller {
	return &Controller{table: table, terminate: terminate}
}

// Stop requests termination of the watcher recorded for id and reconciles the
// registry with what the OS reports.
func (c *Controller) Stop(id string) Result {
	if !c.table.Exists(id) {
		return Result{Outcome: NotRunning}
	}

	pid, err := c.table.Read(id)
	if err != nil {
		return Result{Outcome: Failed, Err: err}
	}
	if pid <= 0 {
		return Result{Outcome: Failed, PID: pid, Err: fmt.Errorf("refusing to signal pid %d for %q", pid, id)}
	}
	if pid == os.Getpid() {
		return Result{Outcome: Failed, PID: pid, Err: fmt.Errorf("refusing to signal current process (pid %d)", pid)}
	}

	outcome := Stopped
	if err := c.terminate(pid); err != nil {
		if !errors.Is(err, ErrProcessGone) {
			return Result{Outcome: Failed, PID: pid, Err: fmt.Errorf("signal watcher %q (pid %d): %w", id, pid, err)}
		}
		outcome = StaleCleaned
	}

	if err := c.table.Remove(id); err != nil && !errors.Is(err, registry.ErrNotFound) {
		return Result{Outcome: Failed, PID: pid, Err: err}
	}
	return Result{Outcome: outcome, PID: pid}
}
