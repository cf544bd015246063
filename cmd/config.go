package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/nova/internal/config"
)

// NewConfigCmd creates the config command group
func (app *App) NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the nova configuration file",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write a commented default config file to the user config directory
(for example ~/.config/nova/config.yaml). An existing file is never overwritten.

Examples:
  nova config init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "Created config file: %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration (API keys are never printed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := app.overrides
			cfg, err := config.Load(overrides)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, cfg.String())
			if cfg.APIKey != "" {
				fmt.Fprintln(app.stdout, "api key: set")
			}
			if cfg.FilePath != "" {
				fmt.Fprintf(app.stdout, "config file: %s\n", cfg.FilePath)
			} else {
				fmt.Fprintln(app.stdout, "config file: (none)")
			}
			return nil
		},
	})

	return cmd
}

// NewVersionCmd creates the version command
func (app *App) NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nova version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(app.stdout, "nova %s\n", Version)
		},
	}
}
