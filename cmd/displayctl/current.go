package main

import (
	"encoding/json"
	"fmt"

	"github.com/a9sk/displayctl/internal/render"
	"github.com/a9sk/displayctl/internal/x11"
	"github.com/spf13/cobra"
)

var (
	currentJSON bool
	currentX11  bool
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current monitor configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := newService(true)
		if err != nil {
			return err
		}
		defer closeFn()

		inv, err := svc.Current()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if currentJSON {
			data, err := json.MarshalIndent(inv, "", "  ")
			if err != nil {
				return fmt.Errorf("marshalling display state: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		render.Current(out, inv)

		if currentX11 {
			outputs, err := x11.Outputs()
			if err != nil {
				// no X server is normal on a pure Wayland session
				fmt.Fprintf(out, "\nX11 RandR outputs: unavailable (%v)\n", err)
				return nil
			}
			render.Outputs(out, outputs)
		}
		return nil
	},
}

func init() {
	currentCmd.Flags().BoolVar(&currentJSON, "json", false, "print the normalized state as JSON")
	currentCmd.Flags().BoolVar(&currentX11, "x11", false, "also list X11 RandR outputs")
	rootCmd.AddCommand(currentCmd)
}
