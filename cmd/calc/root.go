package main

import (
	"github.com/spf13/cobra"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
)

// cli carries the flags shared by every subcommand and the app built from them.
type cli struct {
	opts appOptions
	app  *app
}

// close releases the app even when the subcommand failed, which cobra's
// post-run hooks do not cover.
func (c *cli) close() {
	if c.app != nil {
		c.app.close()
		c.app = nil
	}
}

// reportError logs err with its code, category and retry policy under the
// failing command's path.
func (c *cli) reportError(operation string, err error) *apperrors.StandardError {
	var log logger.Logger
	if c.app != nil {
		log = c.app.log
	} else {
		log = logger.NewStructured("error", "console")
	}
	return apperrors.NewErrorHandler(log).Handle(operation, err)
}

// run executes root and releases the app, logging any failure.
func run(c *cli, root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if err != nil {
		operation := root.Name()
		if cmd != nil {
			operation = cmd.CommandPath()
		}
		c.reportError(operation, err)
	}
	c.close()
	return err
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "calc",
		Short:         "Insurance premium, swimming calorie and arithmetic calculators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.configPath, "config", "", "config file (default: configs/config.yaml)")
	flags.StringVar(&c.opts.logLevel, "log-level", "", "override logging.level")
	flags.IntVar(&c.opts.retries, "retries", 3, "attempts when connecting to store backends")
	flags.StringVar(&c.opts.metricsOut, "metrics-out", "", "write metrics in Prometheus text format to this file on exit")

	root.AddCommand(
		newArithmeticCommand(c),
		newPremiumCommand(c),
		newQuoteCommand(c),
		newCaloriesCommand(c),
		newProfileCommand(c),
		newRegressionCommand(c),
		newRegistryCommand(c),
	)
	return root
}
