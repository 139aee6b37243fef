// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDateOfBirth__normalize(t *testing.T) {
	cases := map[string]string{
		"1990/05/20": "1990-05-20",
		"1990-05-20": "1990-05-20",
		"1990/05":    "1990/05",
		"":           "",
		"90/5/20":    "90-5-20",
	}
	for input, expected := range cases {
		require.Equal(t, expected, normalizeDateOfBirth(input), "input %q", input)
	}
}

func TestDateOfBirth__validate(t *testing.T) {
	require.NoError(t, validateDateOfBirth("1990-05-20"))

	invalid := []string{
		"",
		"1990/05/20",
		"90-5-20",
		"05-20-1990",
		"1990-05-20T00:00:00Z",
		"19900520",
	}
	for i := range invalid {
		err := validateDateOfBirth(invalid[i])

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "input %q", invalid[i])
		require.Equal(t, "dateOfBirth", verr.Field)
		require.Contains(t, err.Error(), "YYYY-MM-DD")
	}
}
