// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ReadPathID returns the named mux path variable, or "" when it's missing.
func ReadPathID(name string, r *http.Request) string {
	return mux.Vars(r)[name]
}
