package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"", "info"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in).String())
		})
	}
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("warn"))
	assert.False(t, ValidLevel("trace"))
	assert.False(t, ValidLevel(""))
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		logger, err := NewLogger(DefaultConfig())
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zap.InfoLevel))
		assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	})

	t.Run("text debug", func(t *testing.T) {
		logger, err := NewLogger(Config{Level: "debug", Format: "text"})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	})
}

func TestConfig_IsDebug(t *testing.T) {
	assert.True(t, Config{Level: "debug"}.IsDebug())
	assert.False(t, DefaultConfig().IsDebug())
}
