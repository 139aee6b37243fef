// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/moov-io/base"
	moovhttp "github.com/moov-io/base/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	// Prometheus Metrics
	Histogram = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram representing the http response durations",
	}, []string{"route"})
)

// Responder wraps one inbound request. It carries the request ID and server span,
// and records the response duration once a response is written.
type Responder struct {
	XRequestID string

	logger log.Logger

	request *http.Request
	span    opentracing.Span
	name    string
	start   time.Time

	writer http.ResponseWriter
}

func NewResponder(logger log.Logger, w http.ResponseWriter, r *http.Request) *Responder {
	requestID := moovhttp.GetRequestID(r)
	if requestID == "" {
		requestID = base.ID()
	}
	resp := &Responder{
		XRequestID: requestID,
		logger:     logger,
		request:    r,
		name:       fmt.Sprintf("%s-%s", strings.ToLower(r.Method), CleanPath(r.URL.Path)),
		start:      time.Now(),
		writer:     w,
	}
	resp.span = resp.Span()
	w.Header().Set("X-Request-Id", requestID)
	return resp
}

// Context returns the request's context carrying the server span, so outbound
// calls made while handling the request are traced as its children.
func (r *Responder) Context() context.Context {
	if r == nil {
		return context.Background()
	}
	return opentracing.ContextWithSpan(r.request.Context(), r.span)
}

func (r *Responder) Log(kvpairs ...interface{}) {
	if r == nil || r.logger == nil {
		return
	}
	var args = []interface{}{
		"requestID", r.XRequestID,
	}
	args = append(args, kvpairs...)
	r.logger.Log(args...)
}

func (r *Responder) Respond(fn func(http.ResponseWriter)) {
	if r == nil {
		return
	}
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	fn(r.writer)
	r.finish(false)
}

// Problem responds with a 400 and the error's message.
func (r *Responder) Problem(err error) {
	if r == nil {
		return
	}
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	moovhttp.Problem(r.writer, err)
	r.finish(true)
}

// Error responds with status and the error's message.
func (r *Responder) Error(status int, err error) {
	if r == nil {
		return
	}
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	r.writer.WriteHeader(status)
	json.NewEncoder(r.writer).Encode(map[string]string{
		"error": err.Error(),
	})
	r.finish(true)
}

func (r *Responder) finish(failed bool) {
	Histogram.With("route", r.name).Observe(time.Since(r.start).Seconds())
	if r.span != nil {
		if failed {
			ext.Error.Set(r.span, true)
		}
		r.span.Finish()
	}
}

var baseIdRegex = regexp.MustCompile(`([a-f0-9]{40})`)

// CleanPath takes a URL path and formats it for Prometheus metrics
//
// This method replaces /'s with -'s and strips out moov/base.ID() values from URL path slugs.
func CleanPath(path string) string {
	parts := strings.Split(path, "/")
	var out []string
	for i := range parts {
		if parts[i] == "" || baseIdRegex.MatchString(parts[i]) {
			continue // assume it's a moov/base.ID() value
		}
		out = append(out, parts[i])
	}
	return strings.Join(out, "-")
}
