// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/moov-io/partnergate/pkg/util"
	"github.com/moov-io/partnergate/x/mask"
)

const (
	DefaultDwollaTimeout = 30 * time.Second
)

// Environment selects which Dwolla deployment we talk to.
type Environment string

const (
	Sandbox    Environment = "sandbox"
	Production Environment = "production"
)

func (env Environment) String() string {
	return string(env)
}

// ParseEnvironment only accepts the exact values "sandbox" or "production".
func ParseEnvironment(v string) (Environment, error) {
	switch Environment(v) {
	case Sandbox:
		return Sandbox, nil
	case Production:
		return Production, nil
	}
	return "", &ConfigurationError{
		Key:     "DWOLLA_ENV",
		Message: "dwolla environment should either be set to `sandbox` or `production`",
	}
}

// ConfigurationError is returned when a required setting is missing or invalid.
// These are fatal at startup.
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

type Dwolla struct {
	Environment Environment
	Key         string
	Secret      string

	// Endpoint overrides the base URL derived from Environment.
	Endpoint string

	// CAFile is an optional PEM bundle appended to the system roots.
	CAFile  string
	Timeout time.Duration
}

func (cfg Dwolla) overlayEnv() Dwolla {
	cfg.Environment = Environment(util.Or(os.Getenv("DWOLLA_ENV"), string(cfg.Environment)))
	cfg.Key = util.Or(os.Getenv("DWOLLA_KEY"), cfg.Key)
	cfg.Secret = util.Or(os.Getenv("DWOLLA_SECRET"), cfg.Secret)
	cfg.CAFile = util.Or(os.Getenv("HTTP_CLIENT_CAFILE"), cfg.CAFile)
	return cfg
}

func (cfg Dwolla) Validate() error {
	if _, err := ParseEnvironment(string(cfg.Environment)); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Key) == "" {
		return &ConfigurationError{Key: "DWOLLA_KEY", Message: "missing dwolla key"}
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return &ConfigurationError{Key: "DWOLLA_SECRET", Message: "missing dwolla secret"}
	}
	if cfg.Timeout < 0 {
		return &ConfigurationError{Key: "dwolla.timeout", Message: fmt.Sprintf("negative timeout %v", cfg.Timeout)}
	}
	return nil
}

// MarshalJSON masks credentials so the config can be served from the admin port.
func (cfg Dwolla) MarshalJSON() ([]byte, error) {
	type masked Dwolla
	out := masked(cfg)
	out.Key = mask.Password(cfg.Key)
	out.Secret = mask.Password(cfg.Secret)
	return json.Marshal(out)
}
