package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/travelfare/travel-api-client/internal/config"
	"github.com/travelfare/travel-api-client/internal/logger"
	"github.com/travelfare/travel-api-client/pkg/api"
	"github.com/travelfare/travel-api-client/pkg/httpclient"
)

// Resources lists the names accepted by Fetch, in output order.
var Resources = []string{api.EndpointCountries, api.EndpointCities, api.EndpointPrices}

// Fetcher wires config, logging and the API client together.
type Fetcher struct {
	client *api.Client
	log    logger.Logger
}

// NewFetcher builds a fetcher runtime from config.
func NewFetcher(cfg *config.Config, log logger.Logger) (*Fetcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	client, err := api.New(
		api.Config{URL: cfg.APIURL},
		api.WithHTTPClient(httpclient.NewRestyClient(cfg.RequestTimeout)),
		api.WithHeaders(requestHeaders(cfg)),
		api.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	log.InfoObj("api client initialized", "client_config", map[string]any{
		"base_url":        client.BaseURL(),
		"request_timeout": cfg.RequestTimeout.String(),
		"header_count":    len(cfg.APIHeaders),
	})

	return &Fetcher{client: client, log: log}, nil
}

// requestHeaders merges the configured extra headers with the User-Agent.
func requestHeaders(cfg *config.Config) map[string]string {
	headers := make(map[string]string, len(cfg.APIHeaders)+1)
	for k, v := range cfg.APIHeaders {
		if k = strings.TrimSpace(k); k != "" {
			headers[k] = v
		}
	}
	if ua := strings.TrimSpace(cfg.UserAgent); ua != "" {
		headers["User-Agent"] = ua
	}
	return headers
}

// Fetch returns the payload of a single resource.
func (f *Fetcher) Fetch(ctx context.Context, resource string) (json.RawMessage, error) {
	if f == nil || f.client == nil {
		return nil, fmt.Errorf("fetcher is not initialized")
	}

	switch strings.ToLower(strings.TrimSpace(resource)) {
	case api.EndpointCountries:
		return f.client.Countries(ctx)
	case api.EndpointCities:
		return f.client.Cities(ctx)
	case api.EndpointPrices:
		return f.client.Prices(ctx)
	default:
		return nil, fmt.Errorf("unknown resource %q (expected one of %s)", resource, strings.Join(Resources, ", "))
	}
}

// FetchAll requests every resource concurrently and returns them keyed by
// name. The first failure cancels the remaining requests.
func (f *Fetcher) FetchAll(ctx context.Context) (map[string]json.RawMessage, error) {
	results := make([]json.RawMessage, len(Resources))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range Resources {
		g.Go(func() error {
			body, err := f.Fetch(gctx, name)
			if err != nil {
				return err
			}
			results[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(Resources))
	for i, name := range Resources {
		out[name] = results[i]
	}
	return out, nil
}
