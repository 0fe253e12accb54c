package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"tonyspizza/config"
	"tonyspizza/infras/otel"
)

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "tonyspizza-test"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "test", "test.span")
	require.NotNil(t, ctx)
	scope.SetAttribute("booking.id", "b-1")
	scope.End()

	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestScope_RecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Create")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"num_guests": 4,
		"owner":      "u-1",
		"confirmed":  true,
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("insert failed"))
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Len(t, ended[0].Attributes(), 3)
	assert.Equal(t, "insert failed", ended[0].Status().Description)
	assert.Len(t, ended[0].Events(), 1)
}
