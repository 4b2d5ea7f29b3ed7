package telemetry

import (
	"bytes"
	"context"
	"testing"

	"ctchen222/tictactoe/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
)

func TestInitOtelNone(t *testing.T) {
	shutdown, err := InitOtel(context.Background(), config.TelemetryConfig{Exporter: config.ExporterNone}, "test", nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitOtelUnknownExporter(t *testing.T) {
	_, err := InitOtel(context.Background(), config.TelemetryConfig{Exporter: "zipkin"}, "test", nil)
	assert.Error(t, err)
}

func TestInitOtelStdout(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	cfg := config.TelemetryConfig{Exporter: config.ExporterStdout, ServiceName: "tictactoe-test"}
	shutdown, err := InitOtel(context.Background(), cfg, "test", &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("telemetry-test").Start(context.Background(), "room.Run")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name": "room.Run"`)
	assert.Contains(t, buf.String(), "tictactoe-test")
}

func TestInitOtelOTLPIsLazy(t *testing.T) {
	prevTP, prevMP, prevLP := otel.GetTracerProvider(), otel.GetMeterProvider(), global.GetLoggerProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
		global.SetLoggerProvider(prevLP)
	})

	// Exporters connect lazily, so an unreachable collector is not an error here.
	cfg := config.TelemetryConfig{Exporter: config.ExporterOTLP, Endpoint: "127.0.0.1:1", ServiceName: "tictactoe-test"}
	shutdown, err := InitOtel(context.Background(), cfg, "test", nil)
	require.NoError(t, err)
	assert.NotNil(t, shutdown)
}
