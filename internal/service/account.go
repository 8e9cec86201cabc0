package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mateuszroksana/my-backend/internal/repository"
)

// CredentialVerifier compares a supplied password against the stored one.
// Keeping this behind an interface lets the hashed implementation replace
// the legacy plaintext comparison without touching the service contract.
type CredentialVerifier interface {
	Verify(stored, supplied string) error
}

// BcryptVerifier verifies passwords against bcrypt hashes. This is the
// default for new deployments.
type BcryptVerifier struct{}

// Verify compares the supplied password with the stored bcrypt hash.
func (BcryptVerifier) Verify(stored, supplied string) error {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied))
}

// PlaintextVerifier verifies passwords by plain equality, matching accounts
// stored before hashing was introduced.
type PlaintextVerifier struct{}

// Verify compares the supplied password with the stored one directly.
func (PlaintextVerifier) Verify(stored, supplied string) error {
	if stored != supplied {
		return errors.New("password mismatch")
	}
	return nil
}

// AccountService contains the admin login check.
type AccountService struct {
	logger   *zap.Logger
	repo     repository.AccountRepository
	verifier CredentialVerifier
}

// NewAccountService creates a new AccountService.
func NewAccountService(logger *zap.Logger, repo repository.AccountRepository, verifier CredentialVerifier) *AccountService {
	return &AccountService{
		logger:   logger,
		repo:     repo,
		verifier: verifier,
	}
}

// Authenticate looks up the account by username and checks the password
// through the configured verifier. An unknown username and a wrong password
// both answer ErrInvalidCredentials; missing credentials simply never match.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (repository.Account, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Account{}, ErrInvalidCredentials
		}
		return repository.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	if err := s.verifier.Verify(account.Password, password); err != nil {
		s.logger.Warn("invalid password attempt", zap.String("username", username))
		return repository.Account{}, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", zap.String("username", username))
	return account, nil
}
