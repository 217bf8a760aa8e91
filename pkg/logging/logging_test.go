package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldsReachLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := L()
	Use(zap.New(core))
	defer Use(prev)

	Info("engine ready", zap.String("name", "Fake"))
	Debug("engine output", zap.String("line", "readyok"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "engine ready", entries[0].Message)
	assert.Equal(t, "Fake", entries[0].ContextMap()["name"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestInitFallsBackToInfo(t *testing.T) {
	prev := L()
	defer Use(prev)

	Init("loud", false)
	assert.True(t, L().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, L().Core().Enabled(zapcore.DebugLevel))

	Init("debug", true)
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))
}
