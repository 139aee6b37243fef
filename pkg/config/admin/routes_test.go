// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moov-io/partnergate/pkg/config"
)

func TestConfigRoute(t *testing.T) {
	cfg := config.Empty()
	cfg.Dwolla = config.Dwolla{
		Environment: config.Sandbox,
		Key:         "dwolla-key",
		Secret:      "dwolla-secret",
	}

	req := httptest.NewRequest("GET", "/config", nil)
	w := httptest.NewRecorder()
	marshalConfig(cfg)(w, req)
	w.Flush()

	if w.Code != http.StatusOK {
		t.Errorf("bogus HTTP status: %d", w.Code)
	}

	body := w.Body.String()
	if strings.Contains(body, "dwolla-secret") || strings.Contains(body, "dwolla-key") {
		t.Errorf("credentials leaked: %s", body)
	}
	if !strings.Contains(body, `"Environment":"sandbox"`) {
		t.Errorf("missing environment: %s", body)
	}

	// the masked output must still be readable as config
	if _, err := config.Read([]byte(body)); err != nil {
		t.Fatal(err)
	}
}
