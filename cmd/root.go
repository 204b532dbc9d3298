package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "truth",
	Short:        "truth - companion tool for the truth assertion library",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the command line with a production logger.
func Execute() error {
	if l, err := zap.NewProduction(); err == nil {
		logger = l
		defer func() { _ = logger.Sync() }()
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the settings file (default .truth.yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(configCmd)
}
