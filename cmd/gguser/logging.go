package main

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger returns the logger shared by the store, runner and agent.
// Warnings and errors are always shown; debug adds external commands.
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logger.SetLevel(logrus.WarnLevel)
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
