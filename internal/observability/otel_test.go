package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), nil, Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSamplerClampsRatio(t *testing.T) {
	assert.Contains(t, Sampler(5).Description(), "root:AlwaysOnSampler")
	assert.Contains(t, Sampler(-1).Description(), "TraceIDRatioBased{0}")
	assert.Contains(t, Sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestBuildExporterDefaultsToStdout(t *testing.T) {
	exp, err := buildExporter(context.Background(), Config{})
	require.NoError(t, err)
	var _ sdktrace.SpanExporter = exp
	assert.NoError(t, exp.Shutdown(context.Background()))
}
