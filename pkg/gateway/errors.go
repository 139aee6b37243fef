// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gateway

import (
	"fmt"
)

// ValidationError is returned for malformed input, before anything is sent to Dwolla.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// OperationFailed is returned when a Dwolla call fails. Its message is generic and
// never includes the remote error, which is kept as Cause.
type OperationFailed struct {
	Op      string
	Message string
	Cause   error
}

func (e *OperationFailed) Error() string {
	return e.Message
}

func (e *OperationFailed) Unwrap() error {
	return e.Cause
}
