package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger = zap.NewNop()

// Init configures the process logger to write JSON lines to path. The
// terminal belongs to the UI, so nothing is ever logged to stdout. An
// empty path leaves the nop logger in place.
func Init(path string) error {
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.InfoLevel)
	log = zap.New(core)
	return nil
}

// L returns the process logger
func L() *zap.Logger {
	return log
}

// Sync flushes buffered log entries, called on shutdown
func Sync() {
	_ = log.Sync()
}
