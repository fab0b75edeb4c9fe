package main

import (
	"github.com/a9sk/displayctl/internal/render"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved monitor configurations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := newService(false)
		if err != nil {
			return err
		}
		defer closeFn()

		sums, err := svc.List()
		if err != nil {
			return err
		}
		render.Profiles(cmd.OutOrStdout(), cfg.ProfileDir, sums)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
