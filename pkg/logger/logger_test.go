package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "ventas-api", Out: &buf})

	log.Component("jobs").WithRequest("req-1").Info().Str("preset", "yesterday").Msg("digest")

	m := decodeLine(t, &buf)
	assert.Equal(t, "ventas-api", m["service"])
	assert.Equal(t, "jobs", m["component"])
	assert.Equal(t, "req-1", m["request_id"])
	assert.Equal(t, "yesterday", m["preset"])
	assert.Equal(t, "info", m["level"])
}

func TestNew_NivelFiltraDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	log.Debug().Msg("oculto")
	log.Info().Msg("oculto")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestForStatus_NivelPorCodigo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Out: &buf})

	for status, level := range map[int]string{200: "info", 404: "warn", 500: "error"} {
		buf.Reset()
		log.ForStatus(status).Msg("request")
		assert.Equal(t, level, decodeLine(t, &buf)["level"], "status %d", status)
	}
}

func TestParseLevel_Desconocido(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" WARNING "))
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
}

func TestWithRequest_VacioNoAgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Out: &buf})

	log.WithRequest("").Info().Msg("x")
	_, ok := decodeLine(t, &buf)["request_id"]
	assert.False(t, ok)
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Component("x").Error().Msg("nada")
	})
}
