package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelFlag(t *testing.T) {
	t.Run("should accept level names in any case", func(t *testing.T) {
		var f logLevelFlag
		if assert.NoError(t, f.Set("warn")) {
			assert.Equal(t, slog.LevelWarn, f.value)
			assert.Equal(t, "WARN", f.String())
		}
	})
	t.Run("should reject unknown names", func(t *testing.T) {
		var f logLevelFlag
		assert.Error(t, f.Set("verbose"))
		assert.Equal(t, slog.LevelInfo, f.value)
	})
}
