package quote

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// StaticOracle serves fixed prices from memory. It backs unit tests and
// offline development; unknown symbols fail with ErrUnavailable just like
// the live client.
type StaticOracle struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

// NewStaticOracle creates an oracle with the given symbol->price table.
func NewStaticOracle(prices map[string]decimal.Decimal) *StaticOracle {
	table := make(map[string]decimal.Decimal, len(prices))
	for symbol, price := range prices {
		table[strings.ToUpper(symbol)] = price
	}
	return &StaticOracle{prices: table}
}

// SetPrice adds or updates a symbol's price.
func (o *StaticOracle) SetPrice(symbol string, price decimal.Decimal) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prices[strings.ToUpper(symbol)] = price
}

// Remove makes the symbol unresolvable.
func (o *StaticOracle) Remove(symbol string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.prices, strings.ToUpper(symbol))
}

// Lookup returns the configured price for symbol.
func (o *StaticOracle) Lookup(_ context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	o.mu.RLock()
	price, ok := o.prices[symbol]
	o.mu.RUnlock()
	if !ok {
		return Quote{}, fmt.Errorf("%w: unknown symbol %q", ErrUnavailable, symbol)
	}
	return Quote{Symbol: symbol, CompanyName: symbol + " Inc.", Price: price}, nil
}
