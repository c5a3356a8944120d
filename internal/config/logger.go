package config

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from cfg. Unknown levels fall back to
// warn.
func NewLogger(cfg LogConfig, out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.WarnLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{DisableTimestamp: false, FullTimestamp: true})
	}
	return logger
}
