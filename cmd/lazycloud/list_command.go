package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List configured sync profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cfg.Sync) == 0 {
				printStatus(out, statusWarn, "No profiles configured in %s", cfg.Path())
				return nil
			}

			fmt.Fprintln(out, renderProfiles(cfg.Sync))
			return nil
		},
	}
}
