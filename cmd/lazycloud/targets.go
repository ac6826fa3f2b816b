package main

import (
	"strings"

	"github.com/spf13/cobra"

	"lazycloud/internal/supervisor"
)

type targetRunner func(cmd *cobra.Command, target supervisor.Target, rest []string) error

// addTargetCommands attaches the `profile <name>` and `all` selectors to
// parent. extra names the positional arguments that follow the selection.
func addTargetCommands(parent *cobra.Command, verb string, extra []string, run targetRunner) {
	suffix := ""
	if len(extra) > 0 {
		suffix = " " + strings.Join(extra, " ")
	}

	parent.AddCommand(&cobra.Command{
		Use:     "profile <name>" + suffix,
		Aliases: []string{"p"},
		Short:   verb + " a single profile",
		Args:    cobra.ExactArgs(1 + len(extra)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, supervisor.ProfileTarget(args[0]), args[1:])
		},
	})
	parent.AddCommand(&cobra.Command{
		Use:     "all" + suffix,
		Aliases: []string{"a"},
		Short:   verb + " every configured profile",
		Args:    cobra.ExactArgs(len(extra)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, supervisor.AllTarget(), args)
		},
	})
}
