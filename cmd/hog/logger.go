package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func logLevel(verbose int) zapcore.Level {
	switch {
	case verbose >= 2:
		return zapcore.DebugLevel
	case verbose == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.WarnLevel
	}
}

// newLogger logs to stderr, or to a rotated file when path is set. Stdout is
// reserved for the report.
func newLogger(verbose int, path string) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if path != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			Compress:   true,
		})
	}
	return zap.New(zapcore.NewCore(encoder, sink, logLevel(verbose)), zap.AddCaller())
}
