package authflow

import (
	"strings"
)

// Service orchestrates the registration, verification, login and password
// reset flows against the two stores and the sender.
type Service struct {
	accounts AccountStore
	tokens   TokenStore
	sender   Sender

	// baseURL is the front-end origin the emailed links point at,
	// e.g. http://localhost:3000. Paths are fixed: /verify and
	// /reset-password, token appended as a query parameter.
	baseURL string

	audit func(action string, fields map[string]string)
}

type Config struct {
	// LinkBaseURL is required; trailing slash is tolerated.
	LinkBaseURL string
}

func NewService(accounts AccountStore, tokens TokenStore, sender Sender, cfg Config) *Service {
	return &Service{
		accounts: accounts,
		tokens:   tokens,
		sender:   sender,
		baseURL:  strings.TrimRight(cfg.LinkBaseURL, "/"),
		audit:    func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

func (s *Service) verifyLink(token string) string {
	return s.baseURL + "/verify?token=" + token
}

func (s *Service) resetLink(token string) string {
	return s.baseURL + "/reset-password?token=" + token
}
