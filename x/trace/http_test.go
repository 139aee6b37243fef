// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"net/http"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/uber/jaeger-client-go"
)

func TestDecorateHttpRequest(t *testing.T) {
	tracer, closer, err := NewTracer(log.NewNopLogger(), "http-test", 1.0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { closer.Close() })

	span := tracer.StartSpan("dwolla-ping")
	defer span.Finish()

	req, _ := http.NewRequest("GET", "https://api-sandbox.dwolla.com/", nil)
	req = DecorateHttpRequest(req, span)

	if v := req.Header.Get(jaeger.TraceContextHeaderName); v == "" {
		t.Errorf("missing trace header: %#v", req.Header)
	}
}

func TestFromRequest(t *testing.T) {
	_, closer, err := NewTracer(log.NewNopLogger(), "http-test", 1.0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { closer.Close() })

	req, _ := http.NewRequest("POST", "/customers", nil)

	span := FromRequest("create-customer", req)
	if span == nil {
		t.Fatal("nil Span")
	}
	defer span.Finish()

	out, _ := http.NewRequest("POST", "https://api-sandbox.dwolla.com/customers", nil)
	out = DecorateHttpRequest(out, span)
	if v := out.Header.Get(jaeger.TraceContextHeaderName); v == "" {
		t.Errorf("expected trace header: %#v", out.Header)
	}
}
