package repository

import "context"

// Account represents stored admin credentials. Password holds whatever the
// store keeps for the account: a bcrypt hash, or plaintext for legacy data.
// The credential verifier decides how to compare it.
type Account struct {
	ID       string
	Username string
	Password string
}

// AccountRepository defines storage access for the users collection.
type AccountRepository interface {
	// GetByUsername fetches an account by its username.
	// Returns ErrNotFound if no account matches.
	GetByUsername(ctx context.Context, username string) (Account, error)
}
