package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/phishguard/phishguard/internal/application/authflow"
	"github.com/phishguard/phishguard/internal/domain"
)

// TokenStore keeps one-time tokens in a map. Tokens never expire here;
// they stay valid until consumed.
type TokenStore struct {
	mu sync.RWMutex
	// kind|token -> email
	data map[string]string
}

func NewTokenStore() *TokenStore {
	return &TokenStore{data: make(map[string]string)}
}

func key(kind authflow.TokenKind, token string) string { return string(kind) + "|" + token }

func (s *TokenStore) Issue(ctx context.Context, kind authflow.TokenKind, email string) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key(kind, token)] = email
	return token, nil
}

func (s *TokenStore) Resolve(ctx context.Context, kind authflow.TokenKind, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email, ok := s.data[key(kind, token)]
	if !ok {
		return "", domain.ErrInvalidToken()
	}
	return email, nil
}

func (s *TokenStore) Consume(ctx context.Context, kind authflow.TokenKind, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(kind, token)
	email, ok := s.data[k]
	if !ok {
		return "", domain.ErrInvalidToken()
	}
	delete(s.data, k)
	return email, nil
}
