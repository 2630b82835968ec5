package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bvz2000/bvzgo/pkg/log"
)

var debug bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bvz",
		Short:         "inspect the config, resource, and sequence files behind bvz tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			logger := log.New(os.Stdout, "bvz", zerolog.GlobalLevel())
			cmd.SetContext(log.NewContext(cmd.Context(), logger))
		},
	}

	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newResCmd())
	cmd.AddCommand(newSeqCmd())

	return cmd
}

// setupLogging configures zerolog based on flags.
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}
