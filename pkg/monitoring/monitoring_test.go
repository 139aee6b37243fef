// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package monitoring

import (
	"errors"
	"testing"

	"github.com/moov-io/partnergate/pkg/config"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/require"
)

func TestSetup__disabled(t *testing.T) {
	cfg := config.Monitoring{
		Tracing: config.Tracing{Disabled: true},
	}
	shutdown, err := Setup(log.NewNopLogger(), cfg, "v0.0.0")
	require.NoError(t, err)
	shutdown()

	// no client is configured so this must not panic or block
	CaptureError(errors.New("bad thing"))
	CaptureError(nil)
}

func TestSetup(t *testing.T) {
	cfg := config.Empty().Monitoring
	cfg.Sentry.DSN = "https://public@o0.ingest.sentry.io/0"

	shutdown, err := Setup(log.NewNopLogger(), cfg, "v0.0.0")
	require.NoError(t, err)
	defer shutdown()
}

func TestSetup__invalidDSN(t *testing.T) {
	cfg := config.Monitoring{
		Sentry:  config.Sentry{DSN: "not a dsn"},
		Tracing: config.Tracing{Disabled: true},
	}
	_, err := Setup(log.NewNopLogger(), cfg, "v0.0.0")
	require.Error(t, err)
}
