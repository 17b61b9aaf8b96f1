package main

import (
	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered experiments.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := renderEntries(a.out, a.registry.Entries()); err != nil {
				return a.fail(cmd, err)
			}
			return nil
		},
	}
}
