package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_RespetaElNivelConfigurado(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"debug":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.InfoLevel, // sin configurar -> info
		"verboso":  zerolog.InfoLevel, // desconocido -> info
	}
	for in, want := range cases {
		l := New(Config{Env: "production", Level: in})
		assert.Equal(t, want, l.Zerolog().GetLevel(), "nivel %q", in)
	}
}
