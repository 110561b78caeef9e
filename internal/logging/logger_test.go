package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("TRACE"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestLoggerFormatsAndNames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := Wrap(zap.New(core)).Named("evaluator")

	logger.Info("loaded %d questions", 12)
	logger.Warn("no vector for %q", "")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "loaded 12 questions", entries[0].Message)
		assert.Equal(t, "evaluator", entries[0].LoggerName)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	}
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	logger.Error("ignored %v", 1)
	assert.NoError(t, logger.Sync())
}
