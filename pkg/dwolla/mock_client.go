// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package dwolla

import (
	"context"
	"errors"
)

// MockClient records each request it receives. Err fails every call, while the
// per-operation errors fail only that call.
type MockClient struct {
	CustomerLocation      string
	FundingSourceLocation string
	TransferLocation      string
	Authorization         *Authorization

	Err              error
	AuthorizationErr error
	FundingSourceErr error

	Customers      []*CreateCustomer
	Authorizations int
	FundingSources map[string][]*CreateFundingSource
	Transfers      []*CreateTransfer
}

func (c *MockClient) Ping(ctx context.Context) error {
	return c.Err
}

func (c *MockClient) CreateCustomer(ctx context.Context, req *CreateCustomer) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	c.Customers = append(c.Customers, req)
	return c.CustomerLocation, nil
}

func (c *MockClient) CreateOnDemandAuthorization(ctx context.Context) (*Authorization, error) {
	c.Authorizations++
	if c.Err != nil {
		return nil, c.Err
	}
	if c.AuthorizationErr != nil {
		return nil, c.AuthorizationErr
	}
	if c.Authorization == nil {
		return nil, errors.New("no Authorization")
	}
	return c.Authorization, nil
}

func (c *MockClient) CreateFundingSource(ctx context.Context, customerID string, req *CreateFundingSource) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	if c.FundingSourceErr != nil {
		return "", c.FundingSourceErr
	}
	if c.FundingSources == nil {
		c.FundingSources = make(map[string][]*CreateFundingSource)
	}
	customerID = IDFromLocation(customerID)
	c.FundingSources[customerID] = append(c.FundingSources[customerID], req)
	return c.FundingSourceLocation, nil
}

func (c *MockClient) CreateTransfer(ctx context.Context, req *CreateTransfer) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	c.Transfers = append(c.Transfers, req)
	return c.TransferLocation, nil
}

// FundingSourceCalls is how many funding sources were requested across all customers.
func (c *MockClient) FundingSourceCalls() int {
	n := 0
	for _, reqs := range c.FundingSources {
		n += len(reqs)
	}
	return n
}
