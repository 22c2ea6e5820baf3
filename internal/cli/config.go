package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Environment variables read when the matching flag is not set.
const (
	envLogLevel  = "METRICSQL_LOG_LEVEL"
	envLogFormat = "METRICSQL_LOG_FORMAT"
)

// Config holds the resolved global CLI settings.
type Config struct {
	LogLevel  string
	LogFormat string
	Output    string
}

func defaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Output:    "sql",
	}
}

// resolve applies env fallbacks for flags the user did not set.
// Precedence: flag > env > default.
func (c *Config) resolve(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("log-level") {
		if v := os.Getenv(envLogLevel); v != "" {
			c.LogLevel = v
		}
	}
	if !cmd.Flags().Changed("log-format") {
		if v := os.Getenv(envLogFormat); v != "" {
			c.LogFormat = v
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q: use 'text' or 'json'", c.LogFormat)
	}
	if err := validateOutputFormat(c.Output); err != nil {
		return err
	}
	return nil
}

// newLogger builds the logger compilation events are written to.
func (c Config) newLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(c.LogFormat, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}
	return logger
}
