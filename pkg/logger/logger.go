// Package logger provides structured logging using zap.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appConfig "github.com/festy23/hacksavvy/internal/config"
)

// New creates a new logger from LOG_* environment variables.
func New() (*zap.SugaredLogger, error) {
	cfg := appConfig.LoadLoggerConfigFromEnv()
	return NewWithConfig(cfg)
}

// NewWithConfig creates a new logger with custom configuration.
func NewWithConfig(cfg appConfig.LoggerConfig) (*zap.SugaredLogger, error) {
	var zapConfig zap.Config

	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapConfig.Encoding = "json"
		zapConfig.EncoderConfig.TimeKey = "ts"
		zapConfig.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	}

	switch {
	case cfg.IsFileOutput():
		// zap opens file paths in append mode
		zapConfig.OutputPaths = []string{cfg.Output}
	case cfg.Output == "":
		zapConfig.OutputPaths = []string{"stdout"}
	default:
		zapConfig.OutputPaths = []string{cfg.Output}
	}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar().With("service", "hacksavvy"), nil
}
