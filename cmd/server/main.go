// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moov-io/base/admin"
	"github.com/moov-io/partnergate"
	"github.com/moov-io/partnergate/pkg/config"
	cfgadmin "github.com/moov-io/partnergate/pkg/config/admin"
	"github.com/moov-io/partnergate/pkg/dwolla"
	"github.com/moov-io/partnergate/pkg/events"
	"github.com/moov-io/partnergate/pkg/gateway"
	"github.com/moov-io/partnergate/pkg/monitoring"
	"github.com/moov-io/partnergate/pkg/util"
	"github.com/moov-io/partnergate/x/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

var (
	flagConfigFile = flag.String("config", "", "Filepath for config file to load")

	httpAddr  = flag.String("http.addr", "", "HTTP listen address")
	adminAddr = flag.String("admin.addr", "", "Admin HTTP listen address")
)

func main() {
	flag.Parse()

	cfg := readConfig(util.Or(os.Getenv("CONFIG_FILE"), *flagConfigFile))
	cfg.Logger.Log("startup", fmt.Sprintf("Starting partnergate server version %s", partnergate.Version))

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	// Error reporting and tracing come up before anything talks to Dwolla
	flushMonitoring, err := monitoring.Setup(cfg.Logger, cfg.Monitoring, partnergate.Version)
	if err != nil {
		panic(fmt.Sprintf("ERROR setting up monitoring: %v", err))
	}
	defer flushMonitoring()

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	// Spin up admin HTTP server
	adminServer := admin.NewServer(util.Or(*adminAddr, cfg.Admin.BindAddress))
	adminServer.AddVersionHandler(partnergate.Version) // Setup 'GET /version'
	go func() {
		cfg.Logger.Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			cfg.Logger.Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	cfgadmin.RegisterRoutes(adminServer, cfg)

	dwollaClient := setupDwollaClient(cfg, adminServer)

	publisher, err := events.NewPublisher(ctx, cfg.Events)
	if err != nil {
		panic(fmt.Sprintf("ERROR setting up events publisher: %v", err))
	}
	defer func() {
		if err := publisher.Shutdown(ctx); err != nil {
			cfg.Logger.Log("events", fmt.Sprintf("problem shutting down publisher: %v", err))
		}
	}()

	// Create HTTP handler
	handler := mux.NewRouter()
	route.PingRoute(cfg.Logger, handler)

	gw := gateway.New(cfg.Logger, dwollaClient, publisher)
	gateway.NewRouter(cfg.Logger, gw).RegisterRoutes(handler)

	// Create main HTTP server
	serve := setupHTTPServer(util.Or(*httpAddr, cfg.Http.BindAddress), handler)
	shutdownServer := func() {
		if err := serve.Shutdown(context.TODO()); err != nil {
			cfg.Logger.Log("shutdown", err)
		}
	}
	defer shutdownServer()

	// Start main HTTP server
	go func() {
		if certFile, keyFile := cfg.Http.CertFile, cfg.Http.KeyFile; certFile != "" && keyFile != "" {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for secure HTTP server", serve.Addr))
			if err := serve.ListenAndServeTLS(certFile, keyFile); err != nil {
				cfg.Logger.Log("exit", err)
			}
		} else {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for HTTP server", serve.Addr))
			if err := serve.ListenAndServe(); err != nil {
				cfg.Logger.Log("exit", err)
			}
		}
	}()

	if err := <-errs; err != nil {
		cfg.Logger.Log("exit", err)
	}
}

func readConfig(path string) *config.Config {
	cfg, err := config.FromFile(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func setupDwollaClient(cfg *config.Config, svc *admin.Server) dwolla.Client {
	httpClient, err := route.TLSHttpClient(cfg.Dwolla.CAFile, cfg.Dwolla.Timeout)
	if err != nil {
		panic(fmt.Sprintf("problem creating TLS ready *http.Client: %v", err))
	}
	client, err := dwolla.NewClient(log.With(cfg.Logger, "service", "dwolla"), cfg.Dwolla, httpClient)
	if err != nil {
		panic(fmt.Sprintf("ERROR creating Dwolla client: %v", err))
	}
	svc.AddLivenessCheck("dwolla", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return client.Ping(ctx)
	})
	return client
}

func setupHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: handler,
		TLSConfig: &tls.Config{
			InsecureSkipVerify:       false,
			PreferServerCipherSuites: true,
			MinVersion:               tls.VersionTLS12,
		},
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
