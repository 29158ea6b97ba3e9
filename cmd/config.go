package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tushargaudara/Anima-Engine/internal/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the anima configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := settings.Save(cfg); err != nil {
			return err
		}
		fmt.Println("wrote", settings.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
