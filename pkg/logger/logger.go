// Package logger provides file-based logging for the chat application.
// The terminal is owned by the TUI, so everything goes to debug.log under
// the storage directory.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	DEBUG Level = "DEBUG"
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
)

// Logger wraps zap.SugaredLogger for compatibility.
type Logger struct {
	sugar    *zap.SugaredLogger
	filePath string
}

// New creates a file logger under storagePath.
func New(storagePath string) (*Logger, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(storagePath, "debug.log")

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	fileEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	fileCore := zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), zapcore.DebugLevel)
	zapLogger := zap.New(fileCore, zap.AddCaller(), zap.AddCallerSkip(1))

	return &Logger{
		sugar:    zapLogger.Sugar(),
		filePath: logPath,
	}, nil
}

// Nop returns a logger that discards everything. Used by tests and as the
// nil-logger fallback.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) log(level Level, message string) {
	message = SanitizeLog(message)

	switch level {
	case DEBUG:
		l.sugar.Debug(message)
	case INFO:
		l.sugar.Info(message)
	case WARN:
		l.sugar.Warn(message)
	case ERROR:
		l.sugar.Error(message)
	}
}

func (l *Logger) Debug(format string, v ...any) {
	l.log(DEBUG, fmt.Sprintf(format, v...))
}

func (l *Logger) Info(format string, v ...any) {
	l.log(INFO, fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(format string, v ...any) {
	l.log(WARN, fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...any) {
	l.log(ERROR, fmt.Sprintf(format, v...))
}

// Path returns the log file location, empty for the Nop logger.
func (l *Logger) Path() string {
	return l.filePath
}

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
