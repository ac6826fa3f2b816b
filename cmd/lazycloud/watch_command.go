package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lazycloud/internal/supervisor"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Start detached watchers that sync on an interval",
	}
	cmd.PersistentFlags().BoolVar(&runNow, supervisor.RunFlag, false, "Run the watch loop in this process")
	_ = cmd.PersistentFlags().MarkHidden(supervisor.RunFlag)

	addTargetCommands(cmd, "Watch", []string{"<interval>"}, func(cmd *cobra.Command, target supervisor.Target, rest []string) error {
		interval, err := parseInterval(rest[0])
		if err != nil {
			return err
		}
		sup, err := ctx.newSupervisor(cmd)
		if err != nil {
			return err
		}

		if runNow {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return sup.Run(runCtx, target, interval)
		}

		results, err := sup.Start(cmd.Context(), target, interval)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		stderr := cmd.ErrOrStderr()
		for _, result := range results {
			switch result.State {
			case supervisor.StartStateStarted:
				printStatus(out, statusOK, "Started watcher for '%s' (PID %d)", result.Profile, result.PID)
			case supervisor.StartStateAlreadyRunning:
				printStatus(out, statusWarn, "Watcher for '%s' is already running", result.Profile)
			case supervisor.StartStateNotFound:
				printStatus(stderr, statusError, "Profile '%s' not found.", result.Profile)
			default:
				if result.PID > 0 {
					printStatus(stderr, statusError, "Watcher for '%s' (PID %d) is running untracked: %v", result.Profile, result.PID, result.Err)
					continue
				}
				printStatus(stderr, statusError, "Failed to start '%s': %v", result.Profile, result.Err)
			}
		}
		return nil
	})
	return cmd
}

// parseInterval reads a whole number of seconds, at least one.
func parseInterval(raw string) (time.Duration, error) {
	seconds, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("interval %q is too large", raw)
		}
		return 0, fmt.Errorf("interval %q must be a whole number of seconds", raw)
	}
	if seconds == 0 {
		return 0, errors.New("interval must be at least 1 second")
	}
	return time.Duration(seconds) * time.Second, nil
}
