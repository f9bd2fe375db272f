package authflow

import (
	"context"

	"github.com/phishguard/phishguard/internal/domain"
)

/*
AccountStore
------------
Persistence port for accounts. Only describes WHAT the flows need,
not HOW accounts are stored. Accounts are keyed by email and never
deleted by any flow.
*/
type AccountStore interface {
	// Register creates {email, password, verified:false}.
	// Fails with ErrAlreadyRegistered when the email is taken.
	Register(ctx context.Context, email, password string) (domain.Account, error)

	// FindByEmail fails with ErrEmailNotRegistered when absent.
	FindByEmail(ctx context.Context, email string) (domain.Account, error)

	// MarkVerified flips the verified flag. A second call on an already
	// verified account is a no-op success; a missing account is a bug in
	// the caller (token invariant broken) and surfaces as an internal error.
	MarkVerified(ctx context.Context, email string) error

	// UpdatePassword overwrites the password in place.
	UpdatePassword(ctx context.Context, email, newPassword string) error

	// VerifyCredentials does an exact equality match on the stored
	// password. Fails with ErrInvalidCredentials on any mismatch,
	// including unknown emails.
	VerifyCredentials(ctx context.Context, email, password string) (domain.Account, error)
}

/*
TokenStore
----------
Opaque one-time tokens mapping token -> email. Two independent kinds share
one store; keys never collide across kinds. Tokens have no expiry unless the
backing implementation is configured with one: they stay valid until consumed.
*/
type TokenKind string

const (
	TokenVerify TokenKind = "verify"
	TokenReset  TokenKind = "reset"
)

type TokenStore interface {
	// Issue generates a fresh opaque token (128-bit random identifier),
	// stores the mapping and returns the token.
	Issue(ctx context.Context, kind TokenKind, email string) (string, error)

	// Resolve is a pure lookup; it does not consume the token.
	Resolve(ctx context.Context, kind TokenKind, token string) (string, error)

	// Consume looks up and deletes atomically. A consumed token can never
	// be resolved again. Fails with ErrInvalidToken when absent.
	Consume(ctx context.Context, kind TokenKind, token string) (string, error)
}

/*
Sender
------
Outbound email collaborator (SMTP relay or a dev stand-in). The flows block
on Send: the HTTP response is not written until delivery succeeded or failed,
and nothing is rolled back when it fails.
*/
type Sender interface {
	Send(ctx context.Context, toEmail, subject, htmlBody string) error
}
