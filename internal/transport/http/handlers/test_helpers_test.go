package http_handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phishguard/phishguard/internal/application/authflow"
	"github.com/phishguard/phishguard/internal/infrastructure/memory"
	"github.com/phishguard/phishguard/internal/infrastructure/security"
)

// capturingSender records outbound mail so tests can pull tokens out of
// the links, and can be told to fail like a broken relay.
type capturingSender struct {
	mu      sync.Mutex
	sent    []capturedMail
	sendErr error
}

type capturedMail struct {
	to      string
	subject string
	html    string
}

func (s *capturingSender) Send(ctx context.Context, toEmail, subject, htmlBody string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, capturedMail{to: toEmail, subject: subject, html: htmlBody})
	return nil
}

// lastToken extracts the token query parameter from the most recent mail.
func (s *capturingSender) lastToken(t *testing.T) string {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sent) == 0 {
		t.Fatal("no mail captured")
	}
	html := s.sent[len(s.sent)-1].html
	i := strings.Index(html, "token=")
	if i < 0 {
		t.Fatalf("no token in mail body: %q", html)
	}
	rest := html[i+len("token="):]
	if j := strings.IndexAny(rest, `"<&`); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

type testEnv struct {
	auth   *AuthHandler
	sender *capturingSender
	signer *security.SessionSigner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sender := &capturingSender{}
	svc := authflow.NewService(
		memory.NewAccountStore(),
		memory.NewTokenStore(),
		sender,
		authflow.Config{LinkBaseURL: "http://localhost:3000"},
	)
	signer := security.NewSessionSigner("test-secret", "phishguard", time.Hour)

	return &testEnv{
		auth:   NewAuthHandler(svc, signer, false),
		sender: sender,
		signer: signer,
	}
}

func doJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var m map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return m
}
