package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tushargaudara/Anima-Engine/internal/app"
	"github.com/tushargaudara/Anima-Engine/internal/logging"
	"github.com/tushargaudara/Anima-Engine/internal/settings"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagHUD       bool

	cfg settings.Config
)

var rootCmd = &cobra.Command{
	Use:   "anima",
	Short: "Animated desktop pets in a transparent overlay",
	Long: `Anima puts animated pets on your desktop. They live in a borderless,
always-on-top, click-through overlay: drag them around, right-click for a
menu, pick characters from the tray icon's selector panel.

Run without arguments to start the overlay.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagConfig != "" {
			// settings.Load and Save both honor this variable.
			if err := os.Setenv("ANIMA_CONFIG", flagConfig); err != nil {
				return err
			}
		}
		var err error
		cfg, err = settings.Load()
		if err != nil {
			return err
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		if flagLogFormat != "" {
			cfg.Log.Format = flagLogFormat
		}
		if flagHUD {
			cfg.Debug.HUD = true
		}
		logging.Init(cfg.Log.Level, cfg.Log.Format)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default $ANIMA_CONFIG, then ~/.config/anima/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "override log format (text, json)")
	rootCmd.Flags().BoolVar(&flagHUD, "hud", false, "show the debug HUD overlay")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
