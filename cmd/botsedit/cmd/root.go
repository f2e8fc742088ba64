/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/botsedit/pkg/config"
	"github.com/ssargent/botsedit/pkg/logger"
	"github.com/ssargent/botsedit/pkg/stash"
)

// app carries what the PersistentPreRunE hook sets up for subcommands.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	stash *stash.Store
}

func (a *app) close() {
	if a.stash != nil {
		if err := a.stash.Close(); err != nil {
			a.log.Warn("failed to close stash", "error", err)
		}
		a.stash = nil
	}
}

// newRootCmd builds the command tree. Subcommands reach the loaded config,
// logger and stash through a.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "botsedit",
		Short: "Edit item and shop tables of the game data files",
		Long: `botsedit reads the fixed-size binary record tables the game ships
(item tables and both shop file layouts), lets you list, edit, add and
remove records, and writes the table back.

Edits happen in a session that is kept between invocations:

  botsedit open --format item data/item.dat
  botsedit list arm
  botsedit show 12
  botsedit set buyable 0
  botsedit save`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", config.GetDefaultConfigPath(), "Configuration file")
	rootCmd.PersistentFlags().String("stash-dir", "", "Session stash directory (overrides config)")
	rootCmd.PersistentFlags().StringP("session", "s", "", "Session ID (default: the current session)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(
		newOpenCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newSelectCmd(a),
		newSetCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newSaveCmd(a),
		newCloseCmd(a),
		newFieldsCmd(a),
		newSessionsCmd(a),
		newUseCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("stash-dir"); dir != "" {
		cfg.StashDir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}, cmd.ErrOrStderr())

	// config management must work even when the stash cannot be opened
	if cmd.Annotations["stash"] == "none" {
		return nil
	}

	if err := os.MkdirAll(cfg.StashDir, 0750); err != nil {
		return fmt.Errorf("failed to create stash dir: %w", err)
	}
	st, err := stash.Open(cfg.StashDir, a.log)
	if err != nil {
		return err
	}
	a.stash = st
	return nil
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{log: logger.Discard()}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	a.close()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", describeError(err))
		return 1
	}
	return 0
}

// Execute runs the CLI and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
