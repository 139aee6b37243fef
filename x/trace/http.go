// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"net/http"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// DecorateHttpRequest tags span as an outbound call for req and injects it into the headers.
func DecorateHttpRequest(req *http.Request, span opentracing.Span) *http.Request {
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPUrl.Set(span, req.URL.String())
	ext.HTTPMethod.Set(span, req.Method)

	span.Tracer().Inject(
		span.Context(),
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(req.Header),
	)
	return req
}

// FromRequest starts a server span continuing any trace found in the incoming headers.
func FromRequest(name string, req *http.Request) opentracing.Span {
	tracer := opentracing.GlobalTracer()

	parent, _ := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(req.Header))
	return tracer.StartSpan(name, ext.RPCServerOption(parent))
}
