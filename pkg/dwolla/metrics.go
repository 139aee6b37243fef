// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package dwolla

import (
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	dwollaClientErrors = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "dwolla_client_errors",
		Help: "Counter of errors with the remote Dwolla API",
	}, []string{"environment", "operation"})

	requestDuration = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "dwolla_request_duration_seconds",
		Help: "Histogram of Dwolla API response durations",
	}, []string{"operation"})
)

func (c *apiClient) trackError(operation string) {
	dwollaClientErrors.With("environment", c.env.String(), "operation", operation).Add(1)
}
