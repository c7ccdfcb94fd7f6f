package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/tripboard/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(opts.configPath)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg := config.Default()
			if opts.dbPath != "" {
				cfg.Database.Path = opts.dbPath
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Run: func(cmd *cobra.Command, args []string) {
			c := opts.cfg
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "database.path = %s\n", c.Database.Path)
			fmt.Fprintf(out, "ui.date_format = %s\n", c.UI.DateFormat)
			fmt.Fprintf(out, "ui.currency_symbol = %s\n", c.UI.CurrencySymbol)
			fmt.Fprintf(out, "ui.timezone = %s\n", c.UI.Timezone)
			fmt.Fprintf(out, "log.level = %s\n", c.Log.Level)
			fmt.Fprintf(out, "log.format = %s\n", c.Log.Format)
			fmt.Fprintf(out, "log.file = %s\n", c.Log.File)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func configPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("TRIPBOARD_CONFIG"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tripboard", "config.toml")
}
