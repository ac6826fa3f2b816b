package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show watchers recorded in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sup, err := ctx.newSupervisor(cmd)
			if err != nil {
				return err
			}
			statuses, err := sup.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(statuses) == 0 {
				fmt.Fprintln(out, dim(out, "No watchers are running."))
				return nil
			}
			for _, status := range statuses {
				if status.Err != nil {
					printStatus(out, statusWarn, "Running: %s (pid unreadable: %v)", status.Profile, status.Err)
					continue
				}
				printStatus(out, statusOK, "Running: %s (PID %d)", status.Profile, status.PID)
			}
			return nil
		},
	}
}
