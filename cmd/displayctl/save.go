package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the current monitor configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		svc, closeFn, err := newService(true)
		if err != nil {
			return err
		}
		defer closeFn()

		_, path, err := svc.Save(name)
		if err != nil {
			return fmt.Errorf("saving configuration '%s': %w", name, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved as '%s' to %s\n", name, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
