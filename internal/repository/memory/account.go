package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mateuszroksana/my-backend/internal/repository"
)

// AccountRepository implements repository.AccountRepository using an
// in-memory map keyed by username. Used for development and testing.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]repository.Account
}

// NewAccountRepository creates a new in-memory account repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]repository.Account)}
}

// Put stores an account, replacing any existing one with the same username.
func (r *AccountRepository) Put(account repository.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	r.accounts[account.Username] = account
}

// GetByUsername fetches an account by username.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[username]
	if !exists {
		return repository.Account{}, repository.ErrNotFound
	}
	return account, nil
}
