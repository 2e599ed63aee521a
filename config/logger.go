package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// InitLogger configures the shared logger from the loaded configuration.
// Unknown levels fall back to info.
func InitLogger(cfg *Config) *logrus.Logger {
	return configureLogger(Log, cfg, os.Stdout)
}

func configureLogger(l *logrus.Logger, cfg *Config, out io.Writer) *logrus.Logger {
	if cfg.LogFormat == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	l.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	return l
}
