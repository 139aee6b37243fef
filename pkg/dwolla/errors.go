// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package dwolla

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
)

// Error is the body Dwolla returns on failed requests.
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`

	Embedded struct {
		Errors []ErrorDetail `json:"errors"`
	} `json:"_embedded"`
}

// ErrorDetail describes one invalid field in a ValidationError response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func (e *Error) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "dwolla: %s (status=%d)", e.Code, e.StatusCode)
	if e.Message != "" {
		buf.WriteString(": " + e.Message)
	}
	for i := range e.Embedded.Errors {
		d := e.Embedded.Errors[i]
		fmt.Fprintf(&buf, "; %s %s: %s", d.Path, d.Code, d.Message)
	}
	return buf.String()
}

// maxErrorBytes caps how much of an error body we read.
const maxErrorBytes = 64 * 1024

func readError(operation string, resp *http.Response) error {
	bs, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))

	e := &Error{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(bs, e); err != nil || e.Code == "" {
		return fmt.Errorf("%s: unexpected status %s", operation, resp.Status)
	}
	return fmt.Errorf("%s: %w", operation, e)
}
