package main

import (
	"errors"

	"github.com/spf13/cobra"

	"lazycloud/internal/rclone"
	"lazycloud/internal/supervisor"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"s", "sc"},
		Short:   "Run a one-off sync in the foreground",
	}

	addTargetCommands(cmd, "Sync", nil, func(cmd *cobra.Command, target supervisor.Target, _ []string) error {
		sup, err := ctx.newSupervisor(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		stderr := cmd.ErrOrStderr()
		if target.All {
			printStatus(out, statusInfo, "Syncing all profiles...")
		}

		results, err := sup.Sync(cmd.Context(), target)
		if err != nil {
			return err
		}
		for _, result := range results {
			switch {
			case result.Err == nil:
				printStatus(out, statusOK, "Synced '%s'", result.Profile)
			case errors.Is(result.Err, supervisor.ErrProfileNotFound):
				printStatus(stderr, statusError, "Profile '%s' not found.", result.Profile)
			case errors.Is(result.Err, rclone.ErrUnknownMode):
				printStatus(stderr, statusWarn, "Skipped '%s': %v", result.Profile, result.Err)
			default:
				printStatus(stderr, statusError, "Error: '%s': %v", result.Profile, result.Err)
			}
		}
		return nil
	})
	return cmd
}
