// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package dwolla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/moov-io/partnergate"
	"github.com/moov-io/partnergate/pkg/config"
	"github.com/moov-io/partnergate/pkg/util"
	"github.com/moov-io/partnergate/x/trace"

	"github.com/go-kit/kit/log"
	"github.com/opentracing/opentracing-go"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	SandboxEndpoint    = "https://api-sandbox.dwolla.com"
	ProductionEndpoint = "https://api.dwolla.com"

	mediaType = "application/vnd.dwolla.v1.hal+json"
)

// Client makes calls against Dwolla's API. Each method is a single request.
type Client interface {
	Ping(ctx context.Context) error

	CreateCustomer(ctx context.Context, req *CreateCustomer) (string, error)
	CreateOnDemandAuthorization(ctx context.Context) (*Authorization, error)
	CreateFundingSource(ctx context.Context, customerID string, req *CreateFundingSource) (string, error)
	CreateTransfer(ctx context.Context, req *CreateTransfer) (string, error)
}

var (
	HttpClient = &http.Client{
		Timeout: config.DefaultDwollaTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			MaxConnsPerHost:     100,
			IdleConnTimeout:     1 * time.Minute,
		},
	}
)

type apiClient struct {
	client   *http.Client
	endpoint string
	env      config.Environment

	logger log.Logger
}

// NewClient returns a Client for the Dwolla environment in cfg. The environment is
// checked first, so an unset or unknown DWOLLA_ENV fails with a *config.ConfigurationError.
//
// httpClient carries TLS and timeout settings. Access tokens are fetched from the
// environment's /token endpoint with cfg.Key and cfg.Secret and refreshed as they expire.
func NewClient(logger log.Logger, cfg config.Dwolla, httpClient *http.Client) (Client, error) {
	env, err := config.ParseEnvironment(string(cfg.Environment))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if httpClient == nil {
		httpClient = HttpClient
	}
	if cfg.Timeout > 0 {
		c := *httpClient
		c.Timeout = cfg.Timeout
		httpClient = &c
	}

	endpoint := util.Or(cfg.Endpoint, endpointFor(env))
	creds := &clientcredentials.Config{
		ClientID:     cfg.Key,
		ClientSecret: cfg.Secret,
		TokenURL:     buildAddress(endpoint, "/token"),
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	// token requests use httpClient, so they share its TLS config and timeout
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	client := creds.Client(tokenCtx)
	client.Timeout = httpClient.Timeout

	logger.Log("dwolla", fmt.Sprintf("using %s for Dwolla %s address", endpoint, env))

	return &apiClient{
		client:   client,
		endpoint: endpoint,
		env:      env,
		logger:   logger,
	}, nil
}

func endpointFor(env config.Environment) string {
	if env == config.Production {
		return ProductionEndpoint
	}
	return SandboxEndpoint
}

func (c *apiClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, "ping", "GET", "/", nil)
	if err != nil {
		return fmt.Errorf("dwolla ping: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("dwolla ping: got status: %s", resp.Status)
	}
	return nil
}

// do sends one request to Dwolla. body is JSON encoded when non-nil.
func (c *apiClient) do(ctx context.Context, operation, method, relPath string, body interface{}) (*http.Response, error) {
	var buf io.Reader
	if body != nil {
		var b bytes.Buffer
		if err := json.NewEncoder(&b).Encode(body); err != nil {
			return nil, fmt.Errorf("%s: json encoding error: %v", operation, err)
		}
		buf = &b
	}

	req, err := http.NewRequest(method, buildAddress(c.endpoint, relPath), buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", operation, err)
	}
	req = req.WithContext(ctx)
	c.addRequestHeaders(ctx, req, body != nil)

	span, _ := opentracing.StartSpanFromContext(ctx, "dwolla."+operation)
	defer span.Finish()
	req = trace.DecorateHttpRequest(req, span)

	start := time.Now()
	resp, err := c.client.Do(req)
	requestDuration.With("operation", operation).Observe(time.Since(start).Seconds())
	if err != nil {
		c.trackError(operation)
		span.SetTag("error", true)
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		c.trackError(operation)
		span.SetTag("error", true)
	}
	return resp, nil
}

func (c *apiClient) addRequestHeaders(ctx context.Context, req *http.Request, hasBody bool) {
	req.Header.Set("Accept", mediaType)
	if hasBody {
		req.Header.Set("Content-Type", mediaType)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("partnergate/%s", partnergate.Version))
	if requestID := RequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}
}

// created reads the Location header from a 201 response. Dwolla answers every
// resource creation this way and leaves the body empty.
func created(operation string, resp *http.Response) (string, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", readError(operation, resp)
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("%s: missing Location header on %s response", operation, resp.Status)
	}
	return location, nil
}

// buildAddress joins endpoint's path with p.
//
// This keeps any path prefix on the endpoint (e.g. a test server mounted under /dwolla/).
func buildAddress(endpoint, p string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ""
	}
	u.Path = path.Join("/", u.Path, p)
	return u.String()
}
