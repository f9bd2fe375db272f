package authflow

import (
	"context"

	"github.com/phishguard/phishguard/internal/domain"
)

// Login authenticates an account. Unknown emails and wrong passwords fail
// identically; an unverified account fails distinctly so the client can
// prompt for the confirmation mail.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	acc, err := s.accounts.VerifyCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}

	if !acc.Verified {
		return "", domain.ErrNotVerified()
	}

	s.audit("login", map[string]string{"email": acc.Email})
	return acc.Email, nil
}
