// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package dwolla

import (
	"context"
	"fmt"
)

// CreateFundingSource is the body of POST /customers/{id}/funding-sources when
// linking a bank account with a Plaid processor token.
type CreateFundingSource struct {
	Links      Links  `json:"_links,omitempty"`
	PlaidToken string `json:"plaidToken"`
	Name       string `json:"name"`
}

// CreateFundingSource returns the URL of the new funding source. customerID can be
// the bare ID or the customer's URL.
func (c *apiClient) CreateFundingSource(ctx context.Context, customerID string, req *CreateFundingSource) (string, error) {
	if req == nil {
		return "", fmt.Errorf("create funding source: nil request")
	}
	customerID = IDFromLocation(customerID)
	if customerID == "" {
		return "", fmt.Errorf("create funding source: missing customerID")
	}

	relPath := fmt.Sprintf("/customers/%s/funding-sources", customerID)
	resp, err := c.do(ctx, "funding-sources", "POST", relPath, req)
	if err != nil {
		return "", fmt.Errorf("create funding source: %v", err)
	}
	return created("create funding source", resp)
}
