package service

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogSpanExporter writes finished spans to a logrus logger as
// "observability.event" entries.
type LogSpanExporter struct {
	logger *log.Logger
}

var _ sdktrace.SpanExporter = (*LogSpanExporter)(nil)

func NewLogSpanExporter(logger *log.Logger) *LogSpanExporter {
	return &LogSpanExporter{logger: logger}
}

func (e *LogSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		attrs := make(map[string]any, len(s.Attributes()))
		for _, kv := range s.Attributes() {
			attrs[string(kv.Key)] = kv.Value.AsInterface()
		}
		entry := e.logger.WithContext(ctx).WithFields(log.Fields{
			"event.name":  s.Name(),
			"trace_id":    s.SpanContext().TraceID().String(),
			"duration_ms": s.EndTime().Sub(s.StartTime()).Milliseconds(),
			"attributes":  attrs,
		})
		if s.Status().Code == codes.Error {
			entry.WithField("status", s.Status().Description).Warn("observability.event")
			continue
		}
		entry.Info("observability.event")
	}
	return nil
}

func (e *LogSpanExporter) Shutdown(context.Context) error { return nil }

// NewLoggingTracerProvider returns a provider that exports every span
// synchronously through logger.
func NewLoggingTracerProvider(logger *log.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(NewLogSpanExporter(logger)))
}
