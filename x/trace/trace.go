// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"fmt"
	"io"

	"github.com/go-kit/kit/log"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegermetrics "github.com/uber/jaeger-lib/metrics/prometheus"
)

// NewTracer returns a Jaeger tracer sampling the given fraction of traces. A rate of
// one or more records every span.
//
// The tracer is installed as the opentracing global.
func NewTracer(logger log.Logger, serviceName string, rate float64) (opentracing.Tracer, io.Closer, error) {
	sampler := &jaegercfg.SamplerConfig{
		Type:  jaeger.SamplerTypeConst,
		Param: 1.0,
	}
	if rate < 1.0 {
		sampler.Type = jaeger.SamplerTypeProbabilistic
		sampler.Param = rate
	}
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler:     sampler,
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans: false,
		},
	}
	tracer, closer, err := cfg.NewTracer(
		jaegercfg.Logger(&jaegerLogger{inner: logger}),
		jaegercfg.Metrics(wrappedPrometheusRegisterer),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("trace: %v", err)
	}
	opentracing.SetGlobalTracer(tracer)
	return tracer, closer, nil
}

var (
	// only register jaeger's metrics once
	wrappedPrometheusRegisterer = jaegermetrics.New(jaegermetrics.WithRegisterer(prometheus.DefaultRegisterer))
)

var _ jaeger.Logger = (*jaegerLogger)(nil)

type jaegerLogger struct {
	inner log.Logger
}

func (l *jaegerLogger) Error(msg string) {
	l.inner.Log("tracing", msg, "level", "error")
}

func (l *jaegerLogger) Infof(msg string, args ...interface{}) {
	l.inner.Log("tracing", fmt.Sprintf(msg, args...))
}
