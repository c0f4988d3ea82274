package tracing

import (
	"fmt"

	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("gymlog")

// EndSpanWithErrCheck records err on the span (if any) and ends it.
// Meant to be deferred with a named error return.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "ok")
	}
	span.End()
}

// HoneycombSetup configures the OpenTelemetry SDK to export to honeycomb.
// API key and endpoint are read by otelconfig from the HONEYCOMB_* / OTEL_* env vars.
func HoneycombSetup(enabled bool, serviceName string) (func(), error) {
	if !enabled {
		log.Debugln("honeycomb tracing disabled")
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(honeycomb.NewBaggageSpanProcessor()),
	)
	if err != nil {
		return nil, fmt.Errorf("configure open telemetry: %w", err)
	}

	log.Debugf("honeycomb tracing set up for service [%s]", serviceName)
	return otelShutdown, nil
}
