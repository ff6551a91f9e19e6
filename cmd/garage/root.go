package main

import (
	"fmt"
	"os"

	"github.com/ARTM2000/acorn"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const logLevelEnv = "GARAGE_LOG_LEVEL"

type rootOptions struct {
	logLevel string
	validate bool
	logger   *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "garage",
		Short: "Wire cars and music libraries with the acorn container",
		Long: `garage replays the container wiring scenarios and builds containers from
component files.

Quick Start:
  garage scenarios                  List the wiring scenarios
  garage run constructor            Replay one scenario
  garage compose -f garage.yaml     Wire a car from a component file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configureLogging(cmd)
		},
	}

	level := os.Getenv(logLevelEnv)
	if level == "" {
		level = logrus.WarnLevel.String()
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", level, "Log level: trace/debug/info/warn/error (env "+logLevelEnv+")")
	cmd.PersistentFlags().BoolVar(&opts.validate, "validate", false, "Check the dependency graph when the container is built")

	cmd.AddCommand(newScenariosCmd())
	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newMusicCmd(opts))
	cmd.AddCommand(newComposeCmd(opts))

	return cmd
}

func (o *rootOptions) configureLogging(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}

	o.logger = logrus.New()
	o.logger.SetOutput(cmd.ErrOrStderr())
	o.logger.SetLevel(level)
	o.logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// builderOptions returns the acorn options selected by the global flags.
func (o *rootOptions) builderOptions() []acorn.Option {
	opts := []acorn.Option{acorn.WithLogger(o.logger)}
	if o.validate {
		opts = append(opts, acorn.WithValidation())
	}
	return opts
}
