package main

import (
	"os"

	"github.com/a9sk/displayctl/internal/config"
	"github.com/a9sk/displayctl/internal/logging"
	"github.com/a9sk/displayctl/internal/mutter"
	"github.com/a9sk/displayctl/internal/profile"
	"github.com/a9sk/displayctl/internal/render"
	"github.com/a9sk/displayctl/internal/snapshot"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath string
	profileDir string
	verbose    bool
	noColor    bool

	cfg    *config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "displayctl",
	Short: "Save and restore GNOME monitor layouts",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Long: `displayctl saves the current monitor layout of a GNOME session as a named
profile and applies it again later, matching monitors by connector even when
mode ids or the set of connected monitors have changed.`,
	Example: `  displayctl save work        # save current layout as 'work'
  displayctl load work        # apply 'work' until logout
  displayctl load work --persistent
  displayctl list             # list saved layouts
  displayctl current          # show current monitor setup
  displayctl delete work      # delete 'work'`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.config/displayctl/config.toml)")
	flags.StringVar(&profileDir, "profile-dir", "", "directory profiles are stored in")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	flags.BoolVar(&noColor, "no-color", false, "disable coloured output")
}

// setup loads the config file and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if profileDir != "" {
		c.ProfileDir = profileDir
	}
	if noColor {
		c.Color = config.ColorNever
	}
	if verbose {
		c.LogLevel = "debug"
	}
	cfg = c

	render.SetColor(cfg.Color)
	l, err := logging.New(os.Stderr, "displayctl", cfg.LogLevel, color.NoColor)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug().Str("config", path).Str("profile_dir", cfg.ProfileDir).Msg("loaded config")
	return nil
}

// newService builds a snapshot.Service. With withDisplay set it also opens
// the session bus; the returned func closes it.
func newService(withDisplay bool) (*snapshot.Service, func(), error) {
	store := profile.NewStore(cfg.ProfileDir)
	if !withDisplay {
		return snapshot.New(nil, store, logger), func() {}, nil
	}

	client, err := mutter.Connect()
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := client.Close(); err != nil {
			logger.Debug().Err(err).Msg("closing session bus")
		}
	}
	return snapshot.New(client, store, logger), closer, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		render.Error(os.Stderr, err)
		os.Exit(1)
	}
}
