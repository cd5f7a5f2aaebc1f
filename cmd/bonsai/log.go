package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
)

// newLogger returns a logger writing on STDERR, or on the given file
// rotated with lumberjack. Debug messages are only written if verbose.
func newLogger(verbose bool, logFile string) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	var sink zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	var encoder zapcore.Encoder
	if logFile == "" {
		encoderConfig.TimeKey = ""
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		if _, err := os.Stat(filepath.Dir(logFile)); err != nil {
			return nil, fmt.Errorf("checking log file directory: %v", err)
		}
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
		})
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core).Sugar(), nil
}

// Logf logs a progress message, only shown on verbose mode.
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	if rcc.logger == nil {
		return
	}
	rcc.logger.Debugf(format, a...)
}

// Infof logs a message shown regardless of verbosity.
func (rcc *rootCmdConfig) Infof(format string, a ...interface{}) {
	if rcc.logger == nil {
		return
	}
	rcc.logger.Infof(format, a...)
}

// Logger returns the structured logger underneath, or a no-op
// logger if logging has not been set up.
func (rcc *rootCmdConfig) Logger() *zap.Logger {
	if rcc.logger == nil {
		return zap.NewNop()
	}
	return rcc.logger.Desugar()
}

func (rcc *rootCmdConfig) Sync() {
	if rcc.logger != nil {
		rcc.logger.Sync()
	}
}
