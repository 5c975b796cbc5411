package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ds124wfegd/jpegify/config"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger from cfg and writes to stdout.
func Setup(cfg config.LogConfig) error {
	return configure(logrus.StandardLogger(), cfg, os.Stdout)
}

func configure(logger *logrus.Logger, cfg config.LogConfig, out io.Writer) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	switch cfg.Format {
	case "", "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	logger.SetOutput(out)
	logger.SetLevel(level)
	return nil
}
