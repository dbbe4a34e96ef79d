package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sketchnotes/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := initConfig(configFile, configForce)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

// initConfig writes the effective config to f and returns its path. An
// existing file is only rewritten with force, keeping the values it had.
func initConfig(f string, force bool) (string, error) {
	cfg, err := config.Load(f)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(cfg.File); err == nil && !force {
		return "", fmt.Errorf("%s already exists, use --force to rewrite it", cfg.File)
	}
	if err := cfg.Save(); err != nil {
		return "", err
	}
	return cfg.File, nil
}
