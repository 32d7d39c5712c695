package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder 安装内存中的Span记录器，测试结束后恢复全局Provider
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	prev := otel.GetTracerProvider()
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	// exporter连接是惰性的，没有Collector也能初始化成功
	shutdown, err := InitTracer(Options{ServiceName: "bookcatalog-test", Endpoint: "localhost:4317", Insecure: true, SampleRatio: 0.5})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestStartSpan_ParentChild(t *testing.T) {
	recorder := useRecorder(t)

	ctx, parent := StartSpan(context.Background(), "catalog", "SearchBooks")
	_, child := StartSpan(ctx, "provider", "provider.google.search")
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "provider.google.search", spans[0].Name())
	assert.Equal(t, "SearchBooks", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
}

func TestRecordError(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartSpan(context.Background(), "provider", "provider.openlibrary.fetch")
	RecordError(span, nil)
	RecordError(span, errors.New("status 503"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "status 503", spans[0].Status().Description)
	assert.Len(t, spans[0].Events(), 1)
}

func TestExtractIDs(t *testing.T) {
	t.Run("没有Span时返回空", func(t *testing.T) {
		assert.Empty(t, ExtractTraceID(context.Background()))
		assert.Empty(t, ExtractSpanID(context.Background()))
	})

	t.Run("有Span时返回十六进制ID", func(t *testing.T) {
		useRecorder(t)
		ctx, span := StartSpan(context.Background(), "catalog", "RemoveBook")
		defer span.End()

		assert.Len(t, ExtractTraceID(ctx), 32)
		assert.Len(t, ExtractSpanID(ctx), 16)
	})
}
