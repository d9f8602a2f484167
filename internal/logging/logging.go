// Package logging builds the logger used by the command line tool.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"descriptor-translator/internal/config"
)

// New creates a logger writing to out. debug forces the debug level.
func New(cfg config.LogConfig, debug bool, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if debug {
		level = logrus.DebugLevel
	}

	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	return log, nil
}
