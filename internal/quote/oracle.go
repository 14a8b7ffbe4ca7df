package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnavailable is returned when a symbol cannot be resolved to a price.
var ErrUnavailable = errors.New("quote unavailable")

// Quote is a fresh price for a symbol.
type Quote struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"company_name"`
	Price       decimal.Decimal `json:"price"`
}

// Oracle resolves a symbol to a current price. Implementations must fetch
// fresh on every call; the ledger never tolerates a cached or stale price.
type Oracle interface {
	Lookup(ctx context.Context, symbol string) (Quote, error)
}

// Client fetches quotes from an IEX-style HTTP endpoint:
// GET {base}/stock/{symbol}/quote?token={key}
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates an oracle client for the given endpoint.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// Lookup fetches the current quote for symbol. Any transport, status, or
// decoding failure is reported as ErrUnavailable.
func (c *Client) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, fmt.Errorf("%w: empty symbol", ErrUnavailable)
	}

	endpoint := fmt.Sprintf("%s/stock/%s/quote?token=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, symbol, resp.StatusCode)
	}

	var payload struct {
		Symbol      string      `json:"symbol"`
		CompanyName string      `json:"companyName"`
		LatestPrice json.Number `json:"latestPrice"`
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	price, err := decimal.NewFromString(payload.LatestPrice.String())
	if err != nil || !price.IsPositive() {
		return Quote{}, fmt.Errorf("%w: no price for %s", ErrUnavailable, symbol)
	}

	if payload.Symbol == "" {
		payload.Symbol = symbol
	}
	return Quote{
		Symbol:      strings.ToUpper(payload.Symbol),
		CompanyName: payload.CompanyName,
		Price:       price,
	}, nil
}
