package trading

import "sync"

// userLocks serializes trades per user. Requests for different users
// proceed in parallel; two trades for the same user never interleave
// between validation and append.
type userLocks struct {
	locks    map[int64]*sync.Mutex
	mapMutex sync.RWMutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

// Lock locks the trade path for a specific user.
func (ul *userLocks) Lock(userID int64) {
	ul.mapMutex.Lock()
	if ul.locks[userID] == nil {
		ul.locks[userID] = &sync.Mutex{}
	}
	mu := ul.locks[userID]
	ul.mapMutex.Unlock()

	mu.Lock()
}

// Unlock releases the trade path for a specific user.
func (ul *userLocks) Unlock(userID int64) {
	ul.mapMutex.RLock()
	mu := ul.locks[userID]
	ul.mapMutex.RUnlock()

	if mu != nil {
		mu.Unlock()
	}
}
