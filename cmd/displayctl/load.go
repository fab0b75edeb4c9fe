package main

import (
	"fmt"

	"github.com/a9sk/displayctl/internal/method"
	"github.com/a9sk/displayctl/internal/models"
	"github.com/a9sk/displayctl/internal/render"
	"github.com/spf13/cobra"
)

var (
	loadVerify     bool
	loadTemporary  bool
	loadPersistent bool
	loadMethod     int
	loadDryRun     bool
)

var loadCmd = &cobra.Command{
	Use:   "load [name]",
	Short: "Load and apply a saved monitor configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		sel := method.Selector{
			Verify:     loadVerify,
			Temporary:  loadTemporary,
			Persistent: loadPersistent,
		}
		if cmd.Flags().Changed("method") {
			n := loadMethod
			sel.Number = &n
		}
		m, err := method.Validate(sel)
		if err != nil {
			return err
		}

		svc, closeFn, err := newService(true)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		plan, err := svc.Load(name, m, loadDryRun)
		if err != nil {
			return err
		}

		render.Warnings(cmd.ErrOrStderr(), plan.Warnings)
		if loadDryRun {
			render.Plan(out, plan.Configuration, plan.Request, m)
			return nil
		}

		switch m {
		case models.MethodVerify:
			fmt.Fprintf(out, "Configuration '%s' verified, nothing changed\n", name)
		default:
			fmt.Fprintf(out, "Configuration '%s' applied (%s)\n", name, m)
		}
		return nil
	},
}

func init() {
	flags := loadCmd.Flags()
	flags.BoolVar(&loadVerify, "verify", false, "only ask the compositor to validate the configuration")
	flags.BoolVar(&loadTemporary, "temporary", false, "apply until logout (default)")
	flags.BoolVar(&loadTemporary, "temp", false, "same as --temporary")
	flags.BoolVar(&loadPersistent, "persistent", false, "apply and let the compositor store it")
	flags.IntVar(&loadMethod, "method", 1, "raw apply method: 0 verify, 1 temporary, 2 persistent")
	flags.BoolVar(&loadDryRun, "dry-run", false, "show what would be applied without applying")
	rootCmd.AddCommand(loadCmd)
}
