package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWithOptions(t *testing.T) {
	log, err := NewWithOptions("kit", Options{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))

	log, err = NewWithOptions("kit", Options{Level: "warn", Development: true})
	require.NoError(t, err)
	assert.False(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))

	_, err = NewWithOptions("kit", Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	log := New("kit")
	require.NotNil(t, log)
	assert.False(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
}
