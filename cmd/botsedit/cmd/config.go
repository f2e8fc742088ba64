package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/botsedit/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Show or create the configuration file",
		Annotations: map[string]string{"stash": "none"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default configuration file",
		Annotations: map[string]string{"stash": "none"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			force, _ := cmd.Flags().GetBool("force")
			if config.ConfigExists(configPath) && !force {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configPath)
			}
			if err := config.SaveConfig(config.DefaultConfig(), configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(initCmd)
	return configCmd
}
