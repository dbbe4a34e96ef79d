// Package cmd implements the sketchnotes command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sketchnotes/internal/app"
	"sketchnotes/internal/config"
	"sketchnotes/internal/logger"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "sketchnotes",
	Short:         "Hand-drawn notes, one page at a time",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default "+config.DefaultFile()+")")
	rootCmd.AddCommand(serveCmd, listCmd, createCmd, deleteCmd, pagesCmd, configCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger every subcommand needs.
func setup() (*config.AppConfig, *zap.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

// withApp opens the app for a one-shot command and shuts it down after.
func withApp(fn func(a *app.App) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	// One-shot commands exit before any outside change could matter.
	cfg.Watch.Enabled = false
	a, err := app.New(cfg, log, nil)
	if err != nil {
		return err
	}
	runErr := fn(a)
	if err := a.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
