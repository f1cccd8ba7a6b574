package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Prepare returns the program logger writing to w. verbose forces the
// debug level.
func (conf *LoggingConfig) Prepare(w zapcore.WriteSyncer, verbose bool) (*zap.Logger, error) {
	levelName := conf.Level
	if levelName == "" {
		levelName = "info"
	}
	if verbose {
		levelName = "debug"
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}

	var enc zapcore.Encoder
	switch conf.Format {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	case "", "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeCaller = nil
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	default:
		return nil, fmt.Errorf("unknown logging format %q", conf.Format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(w), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}
