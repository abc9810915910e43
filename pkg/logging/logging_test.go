package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/chazu/geograph/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		cfg     config.Logging
		enabled zapcore.Level
		off     zapcore.Level
	}{
		{config.Logging{Level: "debug", Development: true}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{config.Logging{Level: "info"}, zapcore.InfoLevel, zapcore.DebugLevel},
		{config.Logging{Level: "warn"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{config.Logging{Level: "error"}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.Level, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.off))
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.Logging{Level: "loud"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.False(t, Nop().Core().Enabled(zapcore.ErrorLevel))
}
