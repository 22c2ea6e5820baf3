// Package cli implements the metricsql command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stderr)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if getOutputFormat(rootCmd) == "json" {
			_ = printJSON(stdout, map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// app carries state resolved before any subcommand runs.
type app struct {
	cfg    Config
	logger *logrus.Logger
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{cfg: defaultConfig()}

	rootCmd := &cobra.Command{
		Use:           "metricsql",
		Short:         "Compile metric queries to SQL",
		Long:          "Compiles metric queries written against a semantic model (explore) into SQL SELECT statements.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.resolve(cmd); err != nil {
				return err
			}
			a.logger = a.cfg.newLogger(logOut)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level (trace, debug, info, warn, error) [$"+envLogLevel+"]")
	rootCmd.PersistentFlags().StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "Log format (text, json) [$"+envLogFormat+"]")
	rootCmd.PersistentFlags().StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "Output format (sql, json)")

	rootCmd.AddCommand(newCompileCmd(a))
	rootCmd.AddCommand(newFieldsCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// entry returns a log entry tagged with the running command.
func (a *app) entry(cmd *cobra.Command) *logrus.Entry {
	logger := a.logger
	if logger == nil {
		logger = a.cfg.newLogger(io.Discard)
	}
	return logrus.NewEntry(logger).WithField("command", cmd.Name())
}
