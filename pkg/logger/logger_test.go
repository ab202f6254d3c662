package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{" WARN ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"chatty", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	log, err := New("warn")
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	_, err = New("nope")
	assert.Error(t, err)
}

func TestMust(t *testing.T) {
	nop := zap.NewNop()
	assert.Same(t, nop, Must(nop, nil))
	assert.Panics(t, func() { Must(nil, errors.New("boom")) })
}

func TestNamed(t *testing.T) {
	assert.NotNil(t, Named(nil, "carbon"))

	core, logs := observer.New(zapcore.InfoLevel)
	Named(zap.New(core), "carbon").Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "carbon", entries[0].LoggerName)
}
