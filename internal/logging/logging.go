package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the production JSON logger at the given level name.
func New(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	return config.Build()
}

// Must is New with a fallback to the info-level logger for bad input.
func Must(level string) *zap.Logger {
	logger, err := New(level)
	if err == nil {
		return logger
	}
	logger, buildErr := New("info")
	if buildErr != nil {
		return zap.NewNop()
	}
	logger.Warn("invalid log level, using info", zap.String("level", level), zap.Error(err))
	return logger
}
