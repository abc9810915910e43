// Package logging builds the zap loggers used across geograph.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chazu/geograph/pkg/config"
)

// New builds a logger from cfg. Development loggers write human readable
// console output; production loggers write JSON.
func New(cfg config.Logging) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	// Command output goes to stdout; logs stay on stderr.
	zc.OutputPaths = []string{"stderr"}

	log, err := zc.Build(zap.AddCaller())
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return log, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger { return zap.NewNop() }
