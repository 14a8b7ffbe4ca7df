package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/SarthakSwaroop/Finance/internal/models"
	"github.com/shopspring/decimal"
)

// MemoryStore is an in-memory Store. It backs unit tests and offline
// development with the same append-only contract as the Postgres store.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]models.User
	byName map[string]int64
	txs    map[int64][]models.Transaction
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		users:  make(map[int64]models.User),
		byName: make(map[string]int64),
		txs:    make(map[int64][]models.Transaction),
	}
}

// CreateUser inserts a new user.
func (s *MemoryStore) CreateUser(_ context.Context, username, passwordHash string, startingCash decimal.Decimal) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[username]; exists {
		return models.User{}, ErrAlreadyExists
	}
	user := models.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		StartingCash: startingCash,
		CreatedAt:    time.Now().UTC(),
	}
	s.nextID++
	s.users[user.ID] = user
	s.byName[username] = user.ID
	return user, nil
}

// UserByUsername fetches a user by username.
func (s *MemoryStore) UserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return s.users[id], nil
}

// CountUsersWithUsername reports how many users carry the given name.
func (s *MemoryStore) CountUsersWithUsername(_ context.Context, username string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.byName[username]; ok {
		return 1, nil
	}
	return 0, nil
}

// StartingCash returns the user's immutable cash baseline.
func (s *MemoryStore) StartingCash(_ context.Context, userID int64) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return decimal.Decimal{}, ErrNotFound
	}
	return user.StartingCash, nil
}

// AppendTransaction adds one entry to the user's log.
func (s *MemoryStore) AppendTransaction(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[tx.UserID]; !ok {
		return models.Transaction{}, ErrNotFound
	}
	tx.ID = s.nextID
	s.nextID++
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	s.txs[tx.UserID] = append(s.txs[tx.UserID], tx)
	return tx, nil
}

// TransactionsByUser returns the user's log, newest first.
func (s *MemoryStore) TransactionsByUser(_ context.Context, userID int64) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.txs[userID]
	out := make([]models.Transaction, len(log))
	// Stored oldest first; reverse for newest-first reads.
	for i, tx := range log {
		out[len(log)-1-i] = tx
	}
	return out, nil
}
