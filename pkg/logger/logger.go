package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"decormarket/pkg/config"
)

// New builds the process-wide zap logger from config. Format "json" selects
// the production encoder; anything else selects the console encoder.
func New(cfg config.LogConfig) *zap.Logger {
	level := zapcore.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	l, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
