package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracer_DisabledReturnsNoopShutdown(t *testing.T) {
	cfg := DefaultConfig("theme-api")
	require.False(t, cfg.Enabled)

	shutdown, err := InitTracer(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("theme-api")

	assert.Equal(t, "theme-api", cfg.ServiceName)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.Equal(t, "localhost:4318", cfg.OTLPEndpoint)
}

func TestTracer_ReturnsNamedTracer(t *testing.T) {
	tr := Tracer("theme-api")
	assert.NotNil(t, tr)
}
