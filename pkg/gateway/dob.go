// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gateway

import (
	"regexp"
	"strings"
)

var dateOfBirthPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// normalizeDateOfBirth rewrites a YYYY/MM/DD value to YYYY-MM-DD. Anything without
// exactly three '/' separated parts is returned unchanged.
func normalizeDateOfBirth(dob string) string {
	parts := strings.Split(dob, "/")
	if len(parts) == 3 {
		return strings.Join(parts, "-")
	}
	return dob
}

func validateDateOfBirth(dob string) error {
	if !dateOfBirthPattern.MatchString(dob) {
		return &ValidationError{
			Field:   "dateOfBirth",
			Message: "invalid date of birth format, use YYYY-MM-DD",
		}
	}
	return nil
}
