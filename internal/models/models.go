package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType labels the direction of a ledger entry.
type TransactionType string

const (
	Purchase TransactionType = "purchase"
	Sale     TransactionType = "sale"
)

// Direction returns -1 for a purchase and +1 for a sale, matching the
// sign of the stored unit price.
func (t TransactionType) Direction() int {
	if t == Purchase {
		return -1
	}
	return 1
}

// User represents a registered account. StartingCash is the immutable
// baseline; the current balance is always derived from the transaction log.
type User struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	StartingCash decimal.Decimal `json:"starting_cash"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Transaction is one immutable entry in the append-only ledger.
// Price is signed: negative for a purchase, positive for a sale, so that
// funds available is startingCash + sum(quantity*price) directly.
type Transaction struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Symbol    string          `json:"symbol"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

// HistoryRow is a display-ready annotation of a transaction: Total is
// quantity times the unsigned unit price.
type HistoryRow struct {
	Symbol    string          `json:"symbol"`
	Type      TransactionType `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// HoldingRow is one position in the wallet statement. Unpriced is set when
// the price oracle could not resolve the symbol; Price and Value are zero
// in that case and excluded from the statement total.
type HoldingRow struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Value    decimal.Decimal `json:"value"`
	Unpriced bool            `json:"unpriced,omitempty"`
}

// WalletStatement is the full valuation of a user's account: current
// positions, funds available, and total net worth (funds plus every
// priced position).
type WalletStatement struct {
	Rows  []HoldingRow    `json:"holdings"`
	Funds decimal.Decimal `json:"funds"`
	Total decimal.Decimal `json:"total"`
}

// RegisterRequest - what the client sends to create an account.
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

// LoginRequest - credentials for an existing account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// BuyRequest - what the client sends to buy shares. The price comes from
// a fresh quote on the server, never from the client.
type BuyRequest struct {
	Symbol string          `json:"symbol" binding:"required"`
	Shares decimal.Decimal `json:"shares" binding:"required"`
}

// SellRequest - what the client sends to sell shares.
type SellRequest struct {
	Symbol string          `json:"symbol" binding:"required"`
	Shares decimal.Decimal `json:"shares" binding:"required"`
}
