package main

import (
	"context"
	"strconv"

	"github.com/containerd/log"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// See https://opentelemetry.io/docs/specs/otel/configuration/sdk-environment-variables/ for details on env vars/values.
const (
	otelSDKDisabledEnv                = "OTEL_SDK_DISABLED"
	otelTracesExporterEnv             = "OTEL_TRACES_EXPORTER"
	otelExporterOTLPEndpointEnv       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	otelExporterOTLPTracesEndpointEnv = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"
	otelExporterOTLPTracesProtocol    = "OTEL_EXPORTER_OTLP_TRACES_PROTOCOL"
	otelExporterOTLPProtocolEnv       = "OTEL_EXPORTER_OTLP_PROTOCOL"
	otelServiceNameEnv                = "OTEL_SERVICE_NAME"
	otelTracesSamplerEnv              = "OTEL_TRACES_SAMPLER"
	otelTracesSamplerArgEnv           = "OTEL_TRACES_SAMPLER_ARG"
)

const defaultServiceName = "requesterctl"

var errTracingDisabled = errors.New("tracing disabled")

// getTracerProvider builds a tracer provider exporting over OTLP/HTTP from
// the standard otel environment variables. Tracing stays off unless an
// endpoint or exporter is configured.
func getTracerProvider(ctx context.Context, getEnv func(string) string) (*sdktrace.TracerProvider, error) {
	if v := getEnv(otelSDKDisabledEnv); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil || b {
			if err != nil {
				err = errors.Wrap(errTracingDisabled, errors.Wrap(err, "failed to parse env").Error())
			} else {
				err = errors.Wrap(errTracingDisabled, "tracing disabled by env")
			}
			return nil, errors.Wrapf(err, "%s=%s", otelSDKDisabledEnv, v)
		}
	}

	// We default to otlp, any other value than empty or "none" is unsupported
	expName := getEnv(otelTracesExporterEnv)
	switch expName {
	case "otlp", "":
	case "none":
		return nil, errors.Wrapf(errTracingDisabled, "trace exports disabled by env %s=%s", otelTracesExporterEnv, expName)
	default:
		return nil, errors.Errorf("unsupported tracing exporter %s in env %s", expName, otelTracesExporterEnv)
	}

	if expName == "" {
		if getEnv(otelExporterOTLPEndpointEnv) == "" && getEnv(otelExporterOTLPTracesEndpointEnv) == "" {
			log.G(ctx).Debug("No tracing endpoint configured, skipping")
			return nil, errors.Wrap(errTracingDisabled, "no tracing endpoint configured")
		}
	}

	proto := getEnv(otelExporterOTLPTracesProtocol)
	if proto == "" {
		proto = getEnv(otelExporterOTLPProtocolEnv)
	}
	switch proto {
	case "http/protobuf", "":
	default:
		return nil, errors.Errorf("unsupported otlp protocol %s, only http/protobuf is supported", proto)
	}

	sampler, err := samplerFromEnv(ctx, getEnv)
	if err != nil {
		return nil, err
	}

	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create otlp exporter")
	}

	serviceName := getEnv(otelServiceNameEnv)
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	res := resource.NewSchemaless(semconv.ServiceName(serviceName))

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(res),
	), nil
}

func samplerFromEnv(ctx context.Context, getEnv func(string) string) (sdktrace.Sampler, error) {
	samplerValue := getEnv(otelTracesSamplerEnv)
	switch samplerValue {
	case "always_on":
		return sdktrace.AlwaysSample(), nil
	case "always_off":
		return sdktrace.NeverSample(), nil
	case "parentbased_always_on", "":
		return sdktrace.ParentBased(sdktrace.AlwaysSample()), nil
	case "parentbased_always_off":
		return sdktrace.ParentBased(sdktrace.NeverSample()), nil
	case "traceidratio", "parentbased_traceidratio":
		ratio := 1.0
		if v := getEnv(otelTracesSamplerArgEnv); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse %s=%s", otelTracesSamplerArgEnv, v)
			}
			ratio = f
		}
		if samplerValue == "traceidratio" {
			return sdktrace.TraceIDRatioBased(ratio), nil
		}
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio)), nil
	default:
		log.G(ctx).WithField("sampler", samplerValue).Warn("Unsupported tracing sampler, using parentbased_always_on")
		return sdktrace.ParentBased(sdktrace.AlwaysSample()), nil
	}
}
