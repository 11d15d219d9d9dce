package tracing

import (
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("fitlog-backend")

// HoneycombSetup configures the OpenTelemetry SDK using the honeycomb distro.
// Honeycomb API key and endpoint are taken from the HONEYCOMB_* / OTEL_* env vars.
// The returned func flushes and shuts the exporters down.
func HoneycombSetup(enabled bool, serviceName string, rdb *redis.Client) (func(), error) {
	if !enabled {
		log.Debugln("tracing disabled, skipping honeycomb setup")
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(honeycomb.NewBaggageSpanProcessor()),
	)
	if err != nil {
		return nil, err
	}

	if rdb != nil {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	GlobalTracer = otel.Tracer(serviceName)
	log.Infof("honeycomb tracing set up for service [%s]", serviceName)

	return otelShutdown, nil
}

// EndSpanWithErrCheck records the error on the span (if any) and ends it.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
