package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracing_WritesSpansToDebugLog(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelDebug)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, slog.LevelError) })

	shutdown := InitTracing(true)

	ctx, parent := otel.Tracer("test").Start(context.Background(), "Publish")
	_, child := otel.Tracer("test").Start(ctx, "Walk")
	child.SetAttributes(attribute.String("walk.ref", "knowledge-abc"))
	child.RecordError(errors.New("tree missing"))
	child.SetStatus(codes.Error, "tree missing")
	child.End()
	parent.End()

	require.NoError(t, shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"msg":"Span finished: Walk"`)
	assert.Contains(t, out, `"msg":"Span finished: Publish"`)
	assert.Contains(t, out, `"walk.ref":"knowledge-abc"`)
	assert.Contains(t, out, `"error":"tree missing"`)
	assert.Contains(t, out, `"status":"Error"`)
	assert.Contains(t, out, `"parent_id"`)
}

func TestInitTracing_DisabledLeavesProviderUntouched(t *testing.T) {
	shutdown := InitTracing(false)

	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.False(t, isSDK)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_ShutdownDetachesProvider(t *testing.T) {
	SetOutput(&bytes.Buffer{}, slog.LevelDebug)

	shutdown := InitTracing(true)
	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, isSDK)

	require.NoError(t, shutdown(context.Background()))
	_, isSDK = otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.False(t, isSDK)
}
