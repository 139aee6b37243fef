// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moov-io/partnergate/pkg/dwolla"
	"github.com/moov-io/partnergate/x/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

type Router struct {
	Logger  log.Logger
	Gateway *Gateway

	CreateCustomer              http.HandlerFunc
	CreateFundingSource         http.HandlerFunc
	CreateOnDemandAuthorization http.HandlerFunc
	CreateTransfer              http.HandlerFunc
}

func NewRouter(logger log.Logger, gw *Gateway) *Router {
	return &Router{
		Logger:                      logger,
		Gateway:                     gw,
		CreateCustomer:              CreateCustomer(logger, gw),
		CreateFundingSource:         CreateFundingSource(logger, gw),
		CreateOnDemandAuthorization: CreateOnDemandAuthorization(logger, gw),
		CreateTransfer:              CreateTransfer(logger, gw),
	}
}

func (c *Router) RegisterRoutes(r *mux.Router) {
	r.Methods("POST").Path("/customers").HandlerFunc(c.CreateCustomer)
	r.Methods("POST").Path("/customers/{customerID}/funding-sources").HandlerFunc(c.CreateFundingSource)
	r.Methods("POST").Path("/on-demand-authorizations").HandlerFunc(c.CreateOnDemandAuthorization)
	r.Methods("POST").Path("/transfers").HandlerFunc(c.CreateTransfer)
}

func getCustomerID(r *http.Request) string {
	return route.ReadPathID("customerID", r)
}

type created struct {
	Location string `json:"location"`
}

func CreateCustomer(logger log.Logger, gw *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		var req NewCustomer
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responder.Problem(err)
			return
		}

		ctx := dwolla.WithRequestID(responder.Context(), responder.XRequestID)
		location, err := gw.CreateCustomer(ctx, req)
		if err != nil {
			respondError(responder, err)
			return
		}
		respondCreated(responder, location)
	}
}

type fundingSourceRequest struct {
	ProcessorToken string `json:"processorToken"`
	BankName       string `json:"bankName"`

	// Links from a prior on-demand authorization. A new authorization
	// is created when they're missing.
	AuthorizationLinks dwolla.Links `json:"_links"`
}

func CreateFundingSource(logger log.Logger, gw *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		var req fundingSourceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responder.Problem(err)
			return
		}

		ctx := dwolla.WithRequestID(responder.Context(), responder.XRequestID)

		var location string
		var err error
		if len(req.AuthorizationLinks) > 0 {
			location, err = gw.CreateFundingSource(ctx, FundingSourceOptions{
				CustomerID:         getCustomerID(r),
				FundingSourceName:  req.BankName,
				ProcessorToken:     req.ProcessorToken,
				AuthorizationLinks: req.AuthorizationLinks,
			})
		} else {
			location, err = gw.AddFundingSource(ctx, AddFundingSourceParams{
				CustomerID:     getCustomerID(r),
				ProcessorToken: req.ProcessorToken,
				BankName:       req.BankName,
			})
		}
		if err != nil {
			respondError(responder, err)
			return
		}
		respondCreated(responder, location)
	}
}

func CreateOnDemandAuthorization(logger log.Logger, gw *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		ctx := dwolla.WithRequestID(responder.Context(), responder.XRequestID)
		links, err := gw.CreateOnDemandAuthorization(ctx)
		if err != nil {
			respondError(responder, err)
			return
		}

		responder.Respond(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]dwolla.Links{
				"_links": links,
			})
		})
	}
}

func CreateTransfer(logger log.Logger, gw *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		var req TransferParams
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responder.Problem(err)
			return
		}

		ctx := dwolla.WithRequestID(responder.Context(), responder.XRequestID)
		location, err := gw.CreateTransfer(ctx, req)
		if err != nil {
			respondError(responder, err)
			return
		}
		respondCreated(responder, location)
	}
}

func respondCreated(responder *route.Responder, location string) {
	responder.Respond(func(w http.ResponseWriter) {
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(&created{Location: location})
	})
}

func respondError(responder *route.Responder, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		responder.Problem(err)
		return
	}
	var failed *OperationFailed
	if errors.As(err, &failed) {
		responder.Log("gateway", failed.Op, "error", failed.Cause)
		responder.Error(http.StatusBadGateway, err)
		return
	}
	responder.Log("gateway", "unexpected error", "error", err)
	responder.Error(http.StatusInternalServerError, err)
}
