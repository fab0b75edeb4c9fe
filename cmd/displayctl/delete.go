package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a saved monitor configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		svc, closeFn, err := newService(false)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := svc.Delete(name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration '%s' deleted\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
