package ledger

import (
	"context"

	"github.com/SarthakSwaroop/Finance/internal/models"
	"github.com/shopspring/decimal"
)

// Store captures the persistence operations the ledger engine needs.
// The transaction log is append-only: there are no update or delete
// operations by design, and derived balances are never written back.
type Store interface {
	CreateUser(ctx context.Context, username, passwordHash string, startingCash decimal.Decimal) (models.User, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
	CountUsersWithUsername(ctx context.Context, username string) (int, error)
	StartingCash(ctx context.Context, userID int64) (decimal.Decimal, error)

	AppendTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	// TransactionsByUser returns the full log for a user, newest first.
	TransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error)
}
