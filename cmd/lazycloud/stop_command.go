package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lazycloud/internal/procctl"
	"lazycloud/internal/supervisor"
)

func newStopCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop running watchers",
	}

	addTargetCommands(cmd, "Stop", nil, func(cmd *cobra.Command, target supervisor.Target, _ []string) error {
		sup, err := ctx.newSupervisor(cmd)
		if err != nil {
			return err
		}
		results, err := sup.Stop(target)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, result := range results {
			switch result.Outcome {
			case procctl.NotRunning:
				printStatus(out, statusWarn, "No watcher running for profile '%s'", result.Profile)
			case procctl.StaleCleaned:
				printStatus(out, statusWarn, "No running process found for '%s'; removed stale record", result.Profile)
			case procctl.Stopped:
				printStatus(out, statusOK, "Stopped watcher for '%s' (PID %d)", result.Profile, result.PID)
			default:
				if !target.All {
					return fmt.Errorf("failed to stop '%s': %w", result.Profile, result.Err)
				}
				printStatus(cmd.ErrOrStderr(), statusError, "Failed to stop '%s': %v", result.Profile, result.Err)
			}
		}
		return nil
	})
	return cmd
}
