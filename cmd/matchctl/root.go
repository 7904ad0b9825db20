package main

import (
	"github.com/spf13/cobra"

	"resume-matcher/internal/shared/telemetry"
)

const app = "matchctl"

var (
	// Used for flags.
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "matchctl scores resumes against job descriptions from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return telemetry.Init(debug)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			telemetry.Sync()
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is environment variables only)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
}
