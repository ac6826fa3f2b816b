// Package deps checks that external binaries lazycloud shells out to are
// installed and runnable.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency lazycloud relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// CheckArgs, when set, are run against Command and must exit zero.
	CheckArgs []string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Check evaluates a single requirement.
func Check(ctx context.Context, req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	if len(req.CheckArgs) > 0 {
		check := exec.CommandContext(ctx, resolved, req.CheckArgs...)
		if out, err := check.CombinedOutput(); err != nil {
			detail := strings.TrimSpace(string(out))
			if detail == "" {
				detail = err.Error()
			}
			status.Detail = fmt.Sprintf("%s %s failed: %s", cmd, strings.Join(req.CheckArgs, " "), firstLine(detail))
			return status
		}
	}
	status.Available = true
	return status
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
