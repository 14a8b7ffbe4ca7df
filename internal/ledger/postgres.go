package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SarthakSwaroop/Finance/internal/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresStore persists users and the transaction log in Postgres.
// Money and quantity columns are NUMERIC and scanned straight into
// decimals; nothing derived is ever written back.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateUser inserts a new user row.
func (s *PostgresStore) CreateUser(ctx context.Context, username, passwordHash string, startingCash decimal.Decimal) (models.User, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		StartingCash: startingCash,
	}
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO users (username, password_hash, starting_cash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `, username, passwordHash, startingCash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.User{}, ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// UserByUsername fetches a user by username.
func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
        SELECT id, username, password_hash, starting_cash, created_at
        FROM users
        WHERE username = $1
    `, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.StartingCash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// CountUsersWithUsername backs the registration uniqueness check.
func (s *PostgresStore) CountUsersWithUsername(ctx context.Context, username string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(id) FROM users WHERE username = $1", username,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// StartingCash returns the user's immutable cash baseline.
func (s *PostgresStore) StartingCash(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var cash decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		"SELECT starting_cash FROM users WHERE id = $1", userID,
	).Scan(&cash)
	if err == sql.ErrNoRows {
		return decimal.Decimal{}, ErrNotFound
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("query starting cash: %w", err)
	}
	return cash, nil
}

// AppendTransaction records one ledger entry. The table has no update
// path; corrections happen through new offsetting entries.
func (s *PostgresStore) AppendTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO transactions (user_id, symbol, quantity, price, tx_type)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `, tx.UserID, tx.Symbol, tx.Quantity, tx.Price, tx.Type).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return tx, nil
}

// TransactionsByUser returns the user's full log, newest first.
func (s *PostgresStore) TransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, user_id, symbol, quantity, price, tx_type, created_at
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]models.Transaction, 0)
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Symbol, &tx.Quantity, &tx.Price, &tx.Type, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}
