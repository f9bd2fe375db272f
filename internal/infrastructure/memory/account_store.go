package memory

import (
	"context"
	"sync"

	"github.com/phishguard/phishguard/internal/domain"
)

// AccountStore is the mutex-guarded map backing for accounts. Each method
// takes the lock once, so lookup+mutate pairs are atomic per call.
type AccountStore struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{byEmail: make(map[string]domain.Account)}
}

func (s *AccountStore) Register(ctx context.Context, email, password string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return domain.Account{}, domain.ErrAlreadyRegistered()
	}

	acc := domain.Account{Email: email, Password: password, Verified: false}
	s.byEmail[email] = acc
	return acc, nil
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byEmail[email]
	if !ok {
		return domain.Account{}, domain.ErrEmailNotRegistered()
	}
	return acc, nil
}

func (s *AccountStore) MarkVerified(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byEmail[email]
	if !ok {
		return domain.ErrAccountMissing(email)
	}
	acc.Verified = true
	s.byEmail[email] = acc
	return nil
}

func (s *AccountStore) UpdatePassword(ctx context.Context, email, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.byEmail[email]
	if !ok {
		return domain.ErrAccountMissing(email)
	}
	acc.Password = newPassword
	s.byEmail[email] = acc
	return nil
}

func (s *AccountStore) VerifyCredentials(ctx context.Context, email, password string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byEmail[email]
	if !ok || acc.Password != password {
		return domain.Account{}, domain.ErrInvalidCredentials()
	}
	return acc, nil
}
