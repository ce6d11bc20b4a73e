package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestZapAdapter_FieldsAndScopes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	scoped := log.WithFields(map[string]interface{}{"taskType": "calculate-premium"})
	scoped.Info("Premium calculated", map[string]interface{}{"premium": "707.00"})
	scoped.WithError(errors.New("boom")).Error("Store failed", nil)
	log.With(map[string]interface{}{"engine": "calories"}).Debug("lookup", nil)
	log.Warn("plain", nil)

	entries := logs.All()
	assert.Len(t, entries, 4)

	first := entries[0].ContextMap()
	assert.Equal(t, "calculate-premium", first["taskType"])
	assert.Equal(t, "707.00", first["premium"])

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)

	assert.Equal(t, "calories", entries[2].ContextMap()["engine"])
	assert.Empty(t, entries[3].ContextMap())
}

func TestNewStructured_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		NewStructured("debug", "json").Debug("json", nil)
		NewStructured("info", "console").Info("console", nil)
		NewNoOpLogger().Error("discarded", map[string]interface{}{"k": 1})
		NewTestLogger(t).Info("test output", nil)
	})
}

func TestRedactPhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0912345678", "*******678"},
		{"+84 912 345 678", "********678"},
		{"12", "***"},
		{"", "***"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RedactPhone(tt.in))
		})
	}
}

func TestRedactName(t *testing.T) {
	assert.Equal(t, "N***", RedactName("Nguyen"))
	assert.Equal(t, "Đ***", RedactName("  Đặng "))
	assert.Equal(t, "", RedactName("   "))
}
