package authflow

import (
	"context"

	"github.com/phishguard/phishguard/internal/domain"
)

// Register creates an unverified account, issues a verification token and
// emails the confirmation link. The account and token are not rolled back
// when the send fails.
func (s *Service) Register(ctx context.Context, email, password string) error {
	created, err := s.accounts.Register(ctx, email, password)
	if err != nil {
		return err
	}

	token, err := s.tokens.Issue(ctx, TokenVerify, created.Email)
	if err != nil {
		return err
	}

	s.audit("register", map[string]string{"email": created.Email})

	link := s.verifyLink(token)
	body := renderLinkMail("Click the link below to confirm your account:", link)
	if err := s.sender.Send(ctx, created.Email, subjectConfirmLogin, body); err != nil {
		return domain.ErrDeliveryFailed(err)
	}
	return nil
}
