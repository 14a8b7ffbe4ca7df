package ledger

import "errors"

// Trade and ledger errors. All of them are recoverable at the request
// boundary; handlers map them to HTTP statuses.
var (
	// ErrInvalidInput covers non-positive quantity or price and empty
	// or unresolvable symbols.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientFunds means the purchase would leave the account at
	// or below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientHoldings means the sale asks for more shares than held.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrQuoteUnavailable means the price oracle could not resolve a
	// symbol. It is never substituted with a stale or zero price.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrDataIntegrity means the replayed log produced a negative holding.
	// Validation makes this unreachable; if it shows up the log itself is
	// corrupt and the value must not be clamped to zero.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists indicates a uniqueness conflict.
	ErrAlreadyExists = errors.New("record already exists")
)
