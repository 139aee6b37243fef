// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package dwolla

import (
	"context"
	"fmt"
)

// CreateCustomer is the body of POST /customers
type CreateCustomer struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Type        string `json:"type,omitempty"`
	Address1    string `json:"address1,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	SSN         string `json:"ssn,omitempty"`
}

// CreateCustomer returns the URL of the new Customer.
func (c *apiClient) CreateCustomer(ctx context.Context, req *CreateCustomer) (string, error) {
	if req == nil {
		return "", fmt.Errorf("create customer: nil request")
	}
	resp, err := c.do(ctx, "customers", "POST", "/customers", req)
	if err != nil {
		return "", fmt.Errorf("create customer: %v", err)
	}
	return created("create customer", resp)
}
