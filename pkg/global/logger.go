package global

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It is a no-op until InitLogger runs so
// packages can log from tests without setup.
var Logger = zap.NewNop()

// InitLogger builds the production zap logger, at debug level outside production.
func InitLogger(production bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if !production {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	Logger = logger
	return logger, nil
}
