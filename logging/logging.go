// Package logging builds the service's zap logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings for the optional log file.
const (
	maxSizeMB  = 100
	maxBackups = 7
	maxAgeDays = 28
)

// New returns a JSON logger at the given level writing to stdout and, when
// filePath is set, to a rotating file as well.
func New(level, filePath string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	syncer := zapcore.AddSync(os.Stdout)
	if filePath != "" {
		fileSyncer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		})
		syncer = zapcore.NewMultiWriteSyncer(syncer, fileSyncer)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), syncer, lvl)

	return zap.New(core, zap.AddCaller()).With(zap.String("service", "shortener")), nil
}
