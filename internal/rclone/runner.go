package rclone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"lazycloud/internal/config"
	"lazycloud/internal/deps"
	"lazycloud/internal/logging"
)

// ErrToolUnavailable reports that rclone is not installed or not working.
var ErrToolUnavailable = errors.New("rclone is not installed or not working")

// Runner executes rclone for sync profiles.
type Runner struct {
	binary string
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewRunner constructs a runner for the given binary. A nil writer discards
// that stream.
func NewRunner(binary string, stdout, stderr io.Writer, logger *slog.Logger) *Runner {
	if strings.TrimSpace(binary) == "" {
		binary = "rclone"
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Runner{
		binary: binary,
		stdout: stdout,
		stderr: stderr,
		logger: logging.NewComponentLogger(logger, "rclone"),
	}
}

// Check verifies that rclone resolves and answers --version.
func (r *Runner) Check(ctx context.Context) error {
	status := deps.Check(ctx, deps.Requirement{
		Name:        "rclone",
		Command:     r.binary,
		Description: "Cloud sync tool invoked for every profile",
		CheckArgs:   []string{"--version"},
	})
	if !status.Available {
		return fmt.Errorf("%w: %s", ErrToolUnavailable, status.Detail)
	}
	return nil
}

// Sync runs rclone once for the profile and blocks until it exits.
func (r *Runner) Sync(ctx context.Context, p config.Profile) error {
	args, err := BuildArgs(p)
	if err != nil {
		return err
	}

	r.logger.Info("running rclone",
		logging.String(logging.FieldProfile, p.Name),
		logging.String("command", r.binary+" "+strings.Join(args, " ")),
	)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("rclone exited with status %d for profile %q", exitErr.ExitCode(), p.Name)
		}
		return fmt.Errorf("run rclone for profile %q: %w", p.Name, err)
	}
	return nil
}
