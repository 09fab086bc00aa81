package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/ezframe/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var forceInit bool

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		if err := config.Save(config.Default(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "decode.command = %s\n", cfg.Decode.Command)
		fmt.Fprintf(out, "decode.args    = %v\n", cfg.Decode.Args)
		fmt.Fprintf(out, "decode.timeout = %s\n", cfg.Decode.Timeout)
		fmt.Fprintf(out, "decode.policy  = %s\n", cfg.Decode.Policy)
		fmt.Fprintf(out, "storage.driver = %s\n", cfg.Storage.Driver)
		fmt.Fprintf(out, "storage.path   = %s\n", cfg.Storage.Path)
		fmt.Fprintf(out, "log.level      = %s\n", cfg.Log.Level)
		fmt.Fprintf(out, "log.file       = %s\n", cfg.Log.File)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")

	configCmd.AddCommand(initConfigCmd, showConfigCmd)
}
