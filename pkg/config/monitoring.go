// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"

	"github.com/moov-io/partnergate/pkg/util"
)

type Monitoring struct {
	Sentry  Sentry
	Tracing Tracing
}

type Sentry struct {
	// DSN is the ingestion endpoint. Error reporting is off when it's empty.
	DSN         string
	Environment string

	// SessionSampleRate only applies to browser session replay and is served
	// to front ends through /config.
	SessionSampleRate float64

	// ErrorSampleRate is the fraction of error events (and error sessions) reported.
	ErrorSampleRate float64

	TracesSampleRate float64
	Debug            bool
}

type Tracing struct {
	Disabled    bool
	ServiceName string
}

func defaultMonitoring() Monitoring {
	return Monitoring{
		Sentry: Sentry{
			SessionSampleRate: 0.1,
			ErrorSampleRate:   1.0,
			TracesSampleRate:  1.0,
			Debug:             false,
		},
		Tracing: Tracing{
			ServiceName: "partnergate",
		},
	}
}

func (cfg Sentry) overlayEnv() Sentry {
	cfg.DSN = util.Or(os.Getenv("SENTRY_DSN"), cfg.DSN)
	return cfg
}

func (cfg Monitoring) Validate() error {
	rates := map[string]float64{
		"session_sample_rate": cfg.Sentry.SessionSampleRate,
		"error_sample_rate":   cfg.Sentry.ErrorSampleRate,
		"traces_sample_rate":  cfg.Sentry.TracesSampleRate,
	}
	for name, rate := range rates {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("sentry: %s=%v is outside [0, 1]", name, rate)
		}
	}
	if !cfg.Tracing.Disabled && cfg.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing: missing service name")
	}
	return nil
}
