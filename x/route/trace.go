// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"github.com/moov-io/partnergate/x/trace"

	opentracing "github.com/opentracing/opentracing-go"
)

func (r *Responder) Span() opentracing.Span {
	return trace.FromRequest(r.name, r.request)
}
