// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package dwolla

import (
	"context"
	"fmt"
)

// CreateTransfer is the body of POST /transfers. Links must hold "source" and
// "destination" funding source URLs.
type CreateTransfer struct {
	Links  Links  `json:"_links"`
	Amount Amount `json:"amount"`
}

type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// CreateTransfer returns the URL of the new Transfer.
func (c *apiClient) CreateTransfer(ctx context.Context, req *CreateTransfer) (string, error) {
	if req == nil {
		return "", fmt.Errorf("create transfer: nil request")
	}
	resp, err := c.do(ctx, "transfers", "POST", "/transfers", req)
	if err != nil {
		return "", fmt.Errorf("create transfer: %v", err)
	}
	return created("create transfer", resp)
}
