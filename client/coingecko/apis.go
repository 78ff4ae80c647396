package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// SimplePrice is the /simple/price response: token id -> currency -> price.
type SimplePrice map[string]map[string]decimal.Decimal

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// GetTokenPrice queries the remote API for the price of the token with the given id in the given currency
func (c *Client) GetTokenPrice(ctx context.Context, id, currency string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", currency)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}

	defer resp.Body.Close()

	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error while reading response body: %s", err)
	}

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("coingecko responded with status %d", resp.StatusCode)
	}

	var prices SimplePrice
	if err := json.Unmarshal(bz, &prices); err != nil {
		return decimal.Zero, fmt.Errorf("error while unmarshaling response body: %s", err)
	}

	price, ok := prices[id][currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s price for %s", currency, id)
	}

	return price, nil
}
