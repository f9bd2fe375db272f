package authflow

import (
	"context"

	"github.com/phishguard/phishguard/internal/domain"
)

// ForgotPassword issues a reset token for a registered email and mails the
// reset link. Unlike login, this endpoint IS enumerating: an unknown email
// fails with a visible 404, which the SPA relies on. Verification state is
// not checked; an unverified account may still reset its password.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	acc, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.tokens.Issue(ctx, TokenReset, acc.Email)
	if err != nil {
		return err
	}

	s.audit("forgot_password", map[string]string{"email": acc.Email})

	link := s.resetLink(token)
	body := renderLinkMail("Click below to reset your password:", link)
	if err := s.sender.Send(ctx, acc.Email, subjectPasswordReset, body); err != nil {
		return domain.ErrDeliveryFailed(err)
	}
	return nil
}

// ResetPassword consumes a reset token and overwrites the password.
// Verification state is untouched.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := s.tokens.Consume(ctx, TokenReset, token)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePassword(ctx, email, newPassword); err != nil {
		return err
	}

	s.audit("reset_password", map[string]string{"email": email})
	return nil
}
