// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// setenv overrides an environment variable for the duration of a test.
func setenv(t *testing.T, key, value string) {
	t.Helper()

	prev, existed := os.LookupEnv(key)
	if value == "" {
		os.Unsetenv(key)
	} else {
		os.Setenv(key, value)
	}
	t.Cleanup(func() {
		if existed {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

func clearDwollaEnv(t *testing.T) {
	for _, key := range []string{"DWOLLA_ENV", "DWOLLA_KEY", "DWOLLA_SECRET", "HTTP_CLIENT_CAFILE", "SENTRY_DSN"} {
		setenv(t, key, "")
	}
}

func TestConfig(t *testing.T) {
	clearDwollaEnv(t)

	cfg, err := FromFile(filepath.Join("testdata", "valid.yaml"))
	require.NoError(t, err)

	if cfg.Logger == nil {
		t.Fatal("nil Logger")
	}
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, Sandbox, cfg.Dwolla.Environment)
	require.Equal(t, "dwolla-key", cfg.Dwolla.Key)
	require.Equal(t, 15*time.Second, cfg.Dwolla.Timeout)
	require.NotNil(t, cfg.Events.Stream)
	require.Equal(t, "mem://partnergate", cfg.Events.Stream.InMem.URL)

	// defaults survive a partial monitoring section
	require.Equal(t, 0.1, cfg.Monitoring.Sentry.SessionSampleRate)
	require.Equal(t, 1.0, cfg.Monitoring.Sentry.ErrorSampleRate)
	require.False(t, cfg.Monitoring.Sentry.Debug)
}

func TestInvalidConfig(t *testing.T) {
	clearDwollaEnv(t)

	cfg, err := FromFile(filepath.Join("testdata", "invalid.yaml"))
	require.Error(t, err)
	require.Nil(t, cfg)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, "DWOLLA_ENV", cfgErr.Key)
}

func TestConfig__environmentOverlay(t *testing.T) {
	clearDwollaEnv(t)
	setenv(t, "DWOLLA_ENV", "production")
	setenv(t, "DWOLLA_KEY", "env-key")
	setenv(t, "DWOLLA_SECRET", "env-secret")

	cfg, err := FromFile("")
	require.NoError(t, err)
	require.Equal(t, Production, cfg.Dwolla.Environment)
	require.Equal(t, "env-key", cfg.Dwolla.Key)
	require.Equal(t, "env-secret", cfg.Dwolla.Secret)
	require.Equal(t, DefaultDwollaTimeout, cfg.Dwolla.Timeout)
	require.Equal(t, DefaultHTTPBindAddress, cfg.Http.BindAddress)
}

func TestConfig__missingEnvironment(t *testing.T) {
	clearDwollaEnv(t)

	_, err := FromFile("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "sandbox")
	require.Contains(t, err.Error(), "production")
}

func TestReadConfig(t *testing.T) {
	clearDwollaEnv(t)

	conf := []byte(`dwolla:
  environment: production
  key: abc
  secret: xyz
events:
  stream:
    kafka:
      brokers: ["localhost:9092"]
      topic: partnergate
`)
	cfg, err := Read(conf)
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:9092"}, cfg.Events.Stream.Kafka.Brokers)
	require.Equal(t, "partnergate", cfg.Events.Stream.Kafka.Topic)
}

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("sandbox")
	require.NoError(t, err)
	require.Equal(t, Sandbox, env)

	env, err = ParseEnvironment("production")
	require.NoError(t, err)
	require.Equal(t, Production, env)

	for _, v := range []string{"", "Sandbox", "prod", " production", "staging"} {
		_, err := ParseEnvironment(v)
		if err == nil {
			t.Errorf("expected error for %q", v)
			continue
		}
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("unexpected error type %T", err)
		}
		if !strings.Contains(err.Error(), "sandbox") || !strings.Contains(err.Error(), "production") {
			t.Errorf("unexpected message: %v", err)
		}
	}
}

func TestDwolla__validate(t *testing.T) {
	cfg := Dwolla{Environment: Sandbox, Key: "key"}
	err := cfg.Validate()

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, "DWOLLA_SECRET", cfgErr.Key)

	cfg.Secret = "secret"
	require.NoError(t, cfg.Validate())

	cfg.Timeout = -1 * time.Second
	require.Error(t, cfg.Validate())
}

func TestDwolla__marshal(t *testing.T) {
	cfg := Dwolla{Environment: Sandbox, Key: "my-key", Secret: "my-secret"}
	bs, err := cfg.MarshalJSON()
	require.NoError(t, err)

	require.NotContains(t, string(bs), "my-secret")
	require.NotContains(t, string(bs), "my-key")
	require.Contains(t, string(bs), `"Environment":"sandbox"`)
}

func TestEvents__validate(t *testing.T) {
	require.NoError(t, Events{}.Validate())

	cfg := Events{
		Stream: &EventStream{
			InMem: &InMemStream{URL: "mem://partnergate"},
			Kafka: &KafkaStream{Brokers: []string{"localhost:9092"}, Topic: "partnergate"},
		},
	}
	require.Error(t, cfg.Validate())

	cfg.Stream.InMem = nil
	require.NoError(t, cfg.Validate())

	cfg.Stream.Kafka.Topic = ""
	require.Error(t, cfg.Validate())
}

func TestMonitoring__validate(t *testing.T) {
	cfg := defaultMonitoring()
	require.NoError(t, cfg.Validate())

	cfg.Sentry.TracesSampleRate = 1.5
	require.Error(t, cfg.Validate())

	cfg = defaultMonitoring()
	cfg.Tracing.ServiceName = ""
	require.Error(t, cfg.Validate())

	cfg.Tracing.Disabled = true
	require.NoError(t, cfg.Validate())
}
