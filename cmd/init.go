package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/truth/internal/config"
)

// initCmd: truth init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.FileName
		}
		if err := config.Write(path, config.Default()); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
		return nil
	},
}

// configCmd: truth config
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the settings in effect for the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			c     config.Config
			found bool
			err   error
		)
		if cfgFile != "" {
			c, err = config.Load(cfgFile)
			found = err == nil
		} else {
			c, found, err = config.Discover(".")
		}
		if err != nil {
			logger.Error("Error loading config file", zap.Error(err))
			return err
		}
		if !found {
			fmt.Fprintln(cmd.OutOrStdout(), "# no settings file found, using defaults")
		}
		return writeYAML(cmd.OutOrStdout(), c)
	},
}
