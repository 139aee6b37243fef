// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package gateway onboards customers, links their bank accounts and moves funds
// through Dwolla.
//
// Every operation is a pass-through: one request to Dwolla (two for AddFundingSource)
// with nothing stored locally. Failed calls are not retried. Dwolla's error is logged
// and returned to callers only as the Cause of an *OperationFailed.
package gateway

import (
	"context"
	"fmt"

	"github.com/moov-io/partnergate/pkg/dwolla"
	"github.com/moov-io/partnergate/pkg/events"
	"github.com/moov-io/partnergate/pkg/monitoring"

	"github.com/go-kit/kit/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	// transfers are always in US dollars
	transferCurrency = currency.USD.String()
)

// NewCustomer is the profile sent to Dwolla when onboarding a customer.
type NewCustomer struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Type        string `json:"type"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`
}

type FundingSourceOptions struct {
	CustomerID         string       `json:"customerId"`
	FundingSourceName  string       `json:"fundingSourceName"`
	ProcessorToken     string       `json:"plaidToken"`
	AuthorizationLinks dwolla.Links `json:"_links"`
}

type AddFundingSourceParams struct {
	CustomerID     string `json:"dwollaCustomerId"`
	ProcessorToken string `json:"processorToken"`
	BankName       string `json:"bankName"`
}

type TransferParams struct {
	SourceFundingSourceURL      string          `json:"sourceFundingSourceUrl"`
	DestinationFundingSourceURL string          `json:"destinationFundingSourceUrl"`
	Amount                      decimal.Decimal `json:"amount"`
}

func (p TransferParams) validate() error {
	if p.SourceFundingSourceURL == "" {
		return &ValidationError{Field: "sourceFundingSourceUrl", Message: "missing funding source"}
	}
	if p.DestinationFundingSourceURL == "" {
		return &ValidationError{Field: "destinationFundingSourceUrl", Message: "missing funding source"}
	}
	if !p.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Message: fmt.Sprintf("%s is not a positive amount", p.Amount.String())}
	}
	if !p.Amount.Equal(p.Amount.Round(2)) {
		return &ValidationError{Field: "amount", Message: fmt.Sprintf("%s has fractional cents", p.Amount.String())}
	}
	return nil
}

type Gateway struct {
	client    dwolla.Client
	publisher events.Publisher
	logger    log.Logger
}

// New returns a Gateway calling Dwolla with client. Created resources are announced
// on publisher, which may be nil.
func New(logger log.Logger, client dwolla.Client, publisher events.Publisher) *Gateway {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if publisher == nil {
		publisher = events.Discard()
	}
	return &Gateway{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateCustomer creates a Dwolla customer and returns its URL.
//
// A YYYY/MM/DD date of birth is rewritten as YYYY-MM-DD. Any other shape that isn't
// YYYY-MM-DD returns a *ValidationError without calling Dwolla.
func (g *Gateway) CreateCustomer(ctx context.Context, cust NewCustomer) (string, error) {
	cust.DateOfBirth = normalizeDateOfBirth(cust.DateOfBirth)
	if err := validateDateOfBirth(cust.DateOfBirth); err != nil {
		g.log(ctx, "create customer", "invalid date of birth")
		return "", err
	}

	g.log(ctx, "create customer", "creating dwolla customer")

	location, err := g.client.CreateCustomer(ctx, &dwolla.CreateCustomer{
		FirstName:   cust.FirstName,
		LastName:    cust.LastName,
		Email:       cust.Email,
		Type:        cust.Type,
		Address1:    cust.Address1,
		City:        cust.City,
		State:       cust.State,
		PostalCode:  cust.PostalCode,
		DateOfBirth: cust.DateOfBirth,
		SSN:         cust.SSN,
	})
	if err != nil {
		return "", g.failed(ctx, "create customer", "failed to create dwolla customer", err)
	}

	g.publish(ctx, events.CustomerCreated, location)
	return location, nil
}

// CreateOnDemandAuthorization returns the hyperlinks of a new on-demand authorization.
func (g *Gateway) CreateOnDemandAuthorization(ctx context.Context) (dwolla.Links, error) {
	auth, err := g.client.CreateOnDemandAuthorization(ctx)
	if err != nil {
		return nil, g.failed(ctx, "create on-demand authorization", "failed to create on-demand authorization", err)
	}
	return auth.Links, nil
}

// CreateFundingSource links a bank account to a customer with a processor token and
// returns the funding source's URL.
//
// The authorization's self link is sent as the on-demand-authorization link. Links
// without a self link return a *ValidationError.
func (g *Gateway) CreateFundingSource(ctx context.Context, opts FundingSourceOptions) (string, error) {
	g.log(ctx, "create funding source", fmt.Sprintf("creating funding source %q for customer %s", opts.FundingSourceName, dwolla.IDFromLocation(opts.CustomerID)))

	req := &dwolla.CreateFundingSource{
		PlaidToken: opts.ProcessorToken,
		Name:       opts.FundingSourceName,
	}
	if len(opts.AuthorizationLinks) > 0 {
		link, ok := opts.AuthorizationLinks["self"]
		if !ok || link.Href == "" {
			return "", &ValidationError{Field: "_links", Message: "on-demand authorization is missing its self link"}
		}
		req.Links = dwolla.Links{
			"on-demand-authorization": link,
		}
	}

	location, err := g.client.CreateFundingSource(ctx, opts.CustomerID, req)
	if err != nil {
		return "", g.failed(ctx, "create funding source", "failed to create funding source", err)
	}

	g.publish(ctx, events.FundingSourceCreated, location)
	return location, nil
}

// AddFundingSource creates an on-demand authorization and then the funding source
// using it. Nothing is undone when the second step fails.
func (g *Gateway) AddFundingSource(ctx context.Context, params AddFundingSourceParams) (string, error) {
	links, err := g.CreateOnDemandAuthorization(ctx)
	if err != nil {
		return "", g.failed(ctx, "add funding source", "failed to add funding source", err)
	}

	location, err := g.CreateFundingSource(ctx, FundingSourceOptions{
		CustomerID:         params.CustomerID,
		FundingSourceName:  params.BankName,
		ProcessorToken:     params.ProcessorToken,
		AuthorizationLinks: links,
	})
	if err != nil {
		return "", g.failed(ctx, "add funding source", "failed to add funding source", err)
	}
	return location, nil
}

// CreateTransfer moves Amount US dollars between two funding sources and returns
// the transfer's URL.
func (g *Gateway) CreateTransfer(ctx context.Context, params TransferParams) (string, error) {
	if err := params.validate(); err != nil {
		return "", err
	}

	location, err := g.client.CreateTransfer(ctx, &dwolla.CreateTransfer{
		Links: dwolla.Links{
			"source":      {Href: params.SourceFundingSourceURL},
			"destination": {Href: params.DestinationFundingSourceURL},
		},
		Amount: dwolla.Amount{
			Currency: transferCurrency,
			Value:    params.Amount.StringFixed(2),
		},
	})
	if err != nil {
		return "", g.failed(ctx, "create transfer", "failed to transfer funds", err)
	}

	g.publish(ctx, events.TransferCreated, location)
	return location, nil
}

func (g *Gateway) log(ctx context.Context, op, msg string) {
	g.logger.Log("gateway", op, "requestID", dwolla.RequestID(ctx), "msg", msg)
}

// failed logs and reports err, then hides it behind a generic message.
func (g *Gateway) failed(ctx context.Context, op, msg string, err error) error {
	g.logger.Log("gateway", op, "requestID", dwolla.RequestID(ctx), "error", err)
	if _, nested := err.(*OperationFailed); !nested {
		monitoring.CaptureError(err)
	}
	return &OperationFailed{
		Op:      op,
		Message: msg,
		Cause:   err,
	}
}

// publish announces a created resource. Failures are only logged.
func (g *Gateway) publish(ctx context.Context, eventType events.Type, location string) {
	evt := events.NewEvent(eventType, location)
	if err := g.publisher.Publish(ctx, evt); err != nil {
		g.logger.Log("gateway", "publish", "eventID", evt.EventID, "type", eventType, "error", err)
	}
}
