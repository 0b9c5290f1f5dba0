// Package logutil owns the process-wide zap logger.
package logutil

import (
	"go.uber.org/zap"
)

var logger *zap.Logger

// InitLogger builds the production logger. Call once at startup.
func InitLogger() {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger = l
}

// GetLogger returns the process logger, initializing it if needed.
func GetLogger() *zap.Logger {
	if logger == nil {
		InitLogger()
	}
	return logger
}
