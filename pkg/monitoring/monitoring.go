// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package monitoring sets up process-wide error reporting and tracing. Setup
// runs once at startup, before any Dwolla calls are made.
package monitoring

import (
	"fmt"
	"io"
	"time"

	"github.com/moov-io/partnergate/pkg/config"
	"github.com/moov-io/partnergate/x/trace"

	"github.com/getsentry/sentry-go"
	"github.com/go-kit/kit/log"
)

const flushTimeout = 2 * time.Second

// Setup initializes Sentry when a DSN is configured and installs a Jaeger tracer unless
// tracing is disabled. The returned func flushes pending reports and closes the tracer.
func Setup(logger log.Logger, cfg config.Monitoring, release string) (func(), error) {
	var closers []func()

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			Release:          release,
			SampleRate:       cfg.Sentry.ErrorSampleRate,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			Debug:            cfg.Sentry.Debug,
		})
		if err != nil {
			return nil, fmt.Errorf("monitoring: sentry: %v", err)
		}
		closers = append(closers, func() {
			sentry.Flush(flushTimeout)
		})
		logger.Log("monitoring", "sentry error reporting enabled")
	}

	if !cfg.Tracing.Disabled {
		_, closer, err := trace.NewTracer(logger, cfg.Tracing.ServiceName, cfg.Sentry.TracesSampleRate)
		if err != nil {
			return nil, fmt.Errorf("monitoring: %v", err)
		}
		closers = append(closers, closeWith(logger, closer))
		logger.Log("monitoring", fmt.Sprintf("tracing %s with sample rate %.2f", cfg.Tracing.ServiceName, cfg.Sentry.TracesSampleRate))
	}

	return func() {
		for i := range closers {
			closers[i]()
		}
	}, nil
}

func closeWith(logger log.Logger, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Log("monitoring", "problem closing tracer", "error", err)
		}
	}
}

// CaptureError reports err to Sentry. It does nothing when Sentry isn't set up.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}
