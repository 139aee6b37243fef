// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/moov-io/partnergate/pkg/config"
	"github.com/moov-io/partnergate/x/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"DWOLLA_ENV", "DWOLLA_KEY", "DWOLLA_SECRET", "HTTP_CLIENT_CAFILE", "SENTRY_DSN"} {
		if v, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			k, v := key, v
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

func TestMain__readConfig(t *testing.T) {
	unsetEnv(t)

	cfg := readConfig(filepath.Join("..", "..", "examples", "config.yaml"))
	require.NotNil(t, cfg)
	require.Equal(t, config.Sandbox, cfg.Dwolla.Environment)
	require.Equal(t, 0.1, cfg.Monitoring.Sentry.SessionSampleRate)
	require.NotNil(t, cfg.Events.Stream.InMem)

	// error reporting stays off until a DSN is configured
	require.Empty(t, cfg.Monitoring.Sentry.DSN)
}

func TestMain__readConfigPanics(t *testing.T) {
	unsetEnv(t)

	require.Panics(t, func() {
		readConfig(filepath.Join("..", "..", "examples", "missing.yaml"))
	})
}

func TestMain__setupHTTPServer(t *testing.T) {
	handler := mux.NewRouter()
	route.PingRoute(log.NewNopLogger(), handler)

	serve := setupHTTPServer(":8200", handler)
	require.Equal(t, ":8200", serve.Addr)
	require.NotNil(t, serve.TLSConfig)

	w := httptest.NewRecorder()
	serve.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "PONG", w.Body.String())
}
