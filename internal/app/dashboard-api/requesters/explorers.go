package requesters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/infrastructure"
	"github.com/BitOpenCode/DashboardGameV1-sub000/internal/app/dashboard-api/metrics"
)

// Provider names, in preference order.
const (
	ProviderTonCenter   = "toncenter"
	ProviderTonAPI      = "tonapi"
	ProviderTonCenterV3 = "toncenter-v3"
)

var ErrEmptyBalance = errors.New("explorer returned no balance")

// ExplorerProvider reads an account balance in nanotons from one public explorer API.
type ExplorerProvider struct {
	name    string
	client  *http.Client
	limiter *rate.Limiter
	request func(ctx context.Context, address string) (*http.Request, error)
	parse   func(body []byte) (decimal.Decimal, error)
}

// NewExplorerProviders returns the configured providers in the order they should be tried.
func NewExplorerProviders(config *infrastructure.Config) []*ExplorerProvider {
	return []*ExplorerProvider{
		NewTonCenterProvider(config),
		NewTonAPIProvider(config),
		NewTonCenterV3Provider(config),
	}
}

func NewTonCenterProvider(config *infrastructure.Config) *ExplorerProvider {
	return newExplorerProvider(config, ProviderTonCenter,
		func(ctx context.Context, address string) (*http.Request, error) {
			q := url.Values{}
			q.Set("address", address)
			req, err := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(config.TonCenterURL, "/")+"/getAddressBalance?"+q.Encode(), nil)
			if err != nil {
				return nil, err
			}
			if config.TonCenterAPIKey != "" {
				req.Header.Set("X-API-Key", config.TonCenterAPIKey)
			}
			return req, nil
		},
		func(body []byte) (decimal.Decimal, error) {
			var res tonCenterBalanceResponse
			if err := decodeJSON(body, &res); err != nil {
				return decimal.Zero, err
			}
			if !res.Ok {
				return decimal.Zero, fmt.Errorf("toncenter error: %s", res.Error)
			}
			return parseNanotons(res.Result)
		})
}

func NewTonAPIProvider(config *infrastructure.Config) *ExplorerProvider {
	return newExplorerProvider(config, ProviderTonAPI,
		func(ctx context.Context, address string) (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(config.TonAPIURL, "/")+"/accounts/"+url.PathEscape(address), nil)
			if err != nil {
				return nil, err
			}
			if config.TonAPIKey != "" {
				req.Header.Set("Authorization", "Bearer "+config.TonAPIKey)
			}
			return req, nil
		},
		func(body []byte) (decimal.Decimal, error) {
			var res tonApiAccountResponse
			if err := decodeJSON(body, &res); err != nil {
				return decimal.Zero, err
			}
			return parseNanotons(res.Balance)
		})
}

func NewTonCenterV3Provider(config *infrastructure.Config) *ExplorerProvider {
	return newExplorerProvider(config, ProviderTonCenterV3,
		func(ctx context.Context, address string) (*http.Request, error) {
			q := url.Values{}
			q.Set("address", address)
			req, err := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(config.TonCenterV3URL, "/")+"/account?"+q.Encode(), nil)
			if err != nil {
				return nil, err
			}
			if config.TonCenterAPIKey != "" {
				req.Header.Set("X-API-Key", config.TonCenterAPIKey)
			}
			return req, nil
		},
		func(body []byte) (decimal.Decimal, error) {
			var res tonCenterV3AccountResponse
			if err := decodeJSON(body, &res); err != nil {
				return decimal.Zero, err
			}
			return parseNanotons(res.Balance)
		})
}

func newExplorerProvider(
	config *infrastructure.Config,
	name string,
	request func(ctx context.Context, address string) (*http.Request, error),
	parse func(body []byte) (decimal.Decimal, error),
) *ExplorerProvider {
	limit := rate.Inf
	if config.ExplorerRequestsPerSecond > 0 {
		limit = rate.Limit(config.ExplorerRequestsPerSecond)
	}

	return &ExplorerProvider{
		name:    name,
		client:  &http.Client{Timeout: config.ExplorerTimeout},
		limiter: rate.NewLimiter(limit, 1),
		request: request,
		parse:   parse,
	}
}

func (p *ExplorerProvider) Name() string {
	return p.name
}

// GetBalance returns the account balance in nanotons.
func (p *ExplorerProvider) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	balance, err := p.getBalance(ctx, address)
	if err != nil {
		metrics.ObserveBalanceLookup(p.name, metrics.OutcomeError)
		log.Debug().Msgf("%s balance lookup for %s failed: %s", p.name, address, err)
		return decimal.Zero, err
	}

	metrics.ObserveBalanceLookup(p.name, metrics.OutcomeOk)
	return balance, nil
}

func (p *ExplorerProvider) getBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return decimal.Zero, err
	}

	req, err := p.request(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error while reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return decimal.Zero, fmt.Errorf("%s responded with status %d", p.name, res.StatusCode)
	}

	return p.parse(body)
}

func decodeJSON(body []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("error while unmarshaling response body: %w", err)
	}

	return nil
}

func parseNanotons(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, ErrEmptyBalance
	}

	balance, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid balance %q: %w", n, err)
	}

	return balance, nil
}
