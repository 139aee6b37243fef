// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package dwolla

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Authorization is a short-lived on-demand authorization. Its self link is
// attached to the funding source created right after it.
type Authorization struct {
	Links      Links  `json:"_links"`
	BodyText   string `json:"bodyText"`
	ButtonText string `json:"buttonText"`
}

func (c *apiClient) CreateOnDemandAuthorization(ctx context.Context) (*Authorization, error) {
	resp, err := c.do(ctx, "on-demand-authorizations", "POST", "/on-demand-authorizations", nil)
	if err != nil {
		return nil, fmt.Errorf("create on-demand authorization: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, readError("create on-demand authorization", resp)
	}

	var auth Authorization
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("create on-demand authorization: problem reading response: %v", err)
	}
	if len(auth.Links) == 0 {
		return nil, fmt.Errorf("create on-demand authorization: response has no _links")
	}
	return &auth, nil
}
