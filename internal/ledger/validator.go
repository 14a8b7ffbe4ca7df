package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/SarthakSwaroop/Finance/internal/models"
	"github.com/SarthakSwaroop/Finance/internal/quote"
	"github.com/shopspring/decimal"
)

// Validator gates writes to the ledger so the funds and holdings
// invariants can never be violated by an accepted trade. Each validate
// call is read-only; on success it returns the exact signed transaction
// to append and nothing else touches the store.
type Validator struct {
	engine *Engine
	oracle quote.Oracle
}

// NewValidator creates a validator over the given engine and oracle.
func NewValidator(engine *Engine, oracle quote.Oracle) *Validator {
	return &Validator{engine: engine, oracle: oracle}
}

// ValidateBuy checks a proposed purchase of quantity shares at the given
// unit price. The purchase must leave strictly positive funds behind:
// spending down to exactly zero is rejected as insufficient.
func (v *Validator) ValidateBuy(ctx context.Context, userID int64, symbol string, quantity, price decimal.Decimal) (models.Transaction, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return models.Transaction{}, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	if !quantity.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidInput, quantity)
	}
	if !price.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidInput, price)
	}

	funds, err := v.engine.FundsAvailable(ctx, userID)
	if err != nil {
		return models.Transaction{}, err
	}
	cost := quantity.Mul(price)
	if funds.Sub(cost).Sign() <= 0 {
		return models.Transaction{}, fmt.Errorf("%w: need more than %s, have %s", ErrInsufficientFunds, cost, funds)
	}

	return models.Transaction{
		UserID:   userID,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price.Neg(),
		Type:     models.Purchase,
	}, nil
}

// ValidateSell fetches a fresh price for symbol and checks a proposed sale
// of quantity shares against the user's current holdings.
func (v *Validator) ValidateSell(ctx context.Context, userID int64, symbol string, quantity decimal.Decimal) (models.Transaction, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	q, err := v.oracle.Lookup(ctx, symbol)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}
	return v.ValidateSellAt(ctx, userID, symbol, quantity, q.Price)
}

// ValidateSellAt checks a sale at an already-fetched price. Callers that
// serialize trades per user fetch the quote before taking the user's lock
// and validate inside it, keeping the critical section free of network
// calls.
func (v *Validator) ValidateSellAt(ctx context.Context, userID int64, symbol string, quantity, price decimal.Decimal) (models.Transaction, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return models.Transaction{}, fmt.Errorf("%w: empty symbol", ErrInvalidInput)
	}
	if !quantity.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: quantity must be positive, got %s", ErrInvalidInput, quantity)
	}
	if !price.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidInput, price)
	}

	held, err := v.engine.Holdings(ctx, userID)
	if err != nil {
		return models.Transaction{}, err
	}
	// Missing symbol counts as zero held.
	if quantity.GreaterThan(held[symbol]) {
		return models.Transaction{}, fmt.Errorf("%w: hold %s of %s, asked to sell %s",
			ErrInsufficientHoldings, held[symbol], symbol, quantity)
	}

	return models.Transaction{
		UserID:   userID,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Type:     models.Sale,
	}, nil
}
