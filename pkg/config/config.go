// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/moov-io/partnergate/pkg/util"

	"github.com/go-kit/kit/log"
	"github.com/spf13/viper"
)

const (
	DefaultHTTPBindAddress  = ":8200"
	DefaultAdminBindAddress = ":9200"
)

type Config struct {
	Logger  log.Logger `yaml:"-" json:"-"`
	Logging Logging

	Http  HTTP
	Admin Admin

	Dwolla     Dwolla
	Events     Events
	Monitoring Monitoring
}

type Logging struct {
	Format string
}

type HTTP struct {
	BindAddress string
	CertFile    string
	KeyFile     string
}

type Admin struct {
	BindAddress           string
	DisableConfigEndpoint bool
}

func Empty() *Config {
	return &Config{
		Logger: log.NewNopLogger(),
		Admin: Admin{
			BindAddress: DefaultAdminBindAddress,
		},
		Http: HTTP{
			BindAddress: DefaultHTTPBindAddress,
		},
		Dwolla: Dwolla{
			Timeout: DefaultDwollaTimeout,
		},
		Monitoring: defaultMonitoring(),
	}
}

// FromFile reads the YAML config at path, or only the environment when path is empty.
func FromFile(path string) (*Config, error) {
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %v", path, err)
		}
		return Read(bs)
	}
	return finish(Empty())
}

func Read(data []byte) (*Config, error) {
	vip := viper.New()
	vip.SetConfigType("yaml")
	if err := vip.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("problem reading config: %v", err)
	}

	cfg := Empty()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("problem unmarshaling config: %v", err)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.Http.BindAddress = util.Or(os.Getenv("HTTP_BIND_ADDRESS"), cfg.Http.BindAddress)
	cfg.Http.CertFile = util.Or(os.Getenv("HTTPS_CERT_FILE"), cfg.Http.CertFile)
	cfg.Http.KeyFile = util.Or(os.Getenv("HTTPS_KEY_FILE"), cfg.Http.KeyFile)
	cfg.Admin.BindAddress = util.Or(os.Getenv("HTTP_ADMIN_BIND_ADDRESS"), cfg.Admin.BindAddress)
	cfg.Dwolla = cfg.Dwolla.overlayEnv()
	cfg.Monitoring.Sentry = cfg.Monitoring.Sentry.overlayEnv()

	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *Config) *Config {
	if strings.EqualFold(cfg.Logging.Format, "json") {
		cfg.Logger = log.NewJSONLogger(os.Stderr)
	} else {
		cfg.Logger = log.NewLogfmtLogger(os.Stderr)
	}

	cfg.Logger = log.With(cfg.Logger, "ts", log.DefaultTimestampUTC)
	cfg.Logger = log.With(cfg.Logger, "caller", log.DefaultCaller)

	return cfg
}

// Validate checks a Config fields and performs various confirmations
// their values conform to expectations.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("missing Config")
	}

	if err := cfg.Dwolla.Validate(); err != nil {
		return fmt.Errorf("dwolla: %w", err)
	}
	if err := cfg.Events.Validate(); err != nil {
		return fmt.Errorf("events: %v", err)
	}
	if err := cfg.Monitoring.Validate(); err != nil {
		return fmt.Errorf("monitoring: %v", err)
	}
	return nil
}
