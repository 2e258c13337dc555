package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	development, err := NewLogger(true)
	require.NoError(t, err)
	assert.NotNil(t, development)

	production, err := NewLogger(false)
	require.NoError(t, err)
	assert.NotNil(t, production)
}

func TestMustNewLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		logger := MustNewLogger(true)
		assert.NotNil(t, logger)
	})
}

func TestZapLoggerKeyValues(t *testing.T) {
	adapter := NewZapLogger(zap.NewNop())

	assert.NotPanics(t, func() {
		adapter.Info("chunk resolved", "engine", "local-extractive", "chunk", 0)
		adapter.Error("engine failed", "engine", "openai-summarize", "kind", "timeout")
	})
}
