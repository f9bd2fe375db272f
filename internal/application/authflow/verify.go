package authflow

import (
	"context"
)

// Verify consumes a verification token and marks the matching account
// verified. Consumption is single-use: a second call with the same token
// fails exactly like an unknown token.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	email, err := s.tokens.Consume(ctx, TokenVerify, token)
	if err != nil {
		return "", err
	}

	if err := s.accounts.MarkVerified(ctx, email); err != nil {
		return "", err
	}

	s.audit("verify", map[string]string{"email": email})
	return email, nil
}
