package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. With a log directory it writes a
// per-service JSON log file there; with an empty directory it logs to
// stdout, which is what the demo binary and tests want.
func New(logDirectory string, service string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true

	if logDirectory != "" {
		if _, err := os.Stat(logDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(logDirectory, os.ModePerm); err != nil {
				return nil, err
			}
		}
		config.OutputPaths = []string{filepath.Join(logDirectory, service+".log")}
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}
