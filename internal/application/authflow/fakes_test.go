package authflow

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/phishguard/phishguard/internal/domain"
)

/*
Fakes for ports
*/

type fakeAccountStore struct {
	mu      sync.Mutex
	byEmail map[string]domain.Account

	registerErr error
	findErr     error
	verifyErr   error
	updateErr   error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{byEmail: map[string]domain.Account{}}
}

func (f *fakeAccountStore) Register(ctx context.Context, email, password string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.registerErr != nil {
		return domain.Account{}, f.registerErr
	}
	if _, ok := f.byEmail[email]; ok {
		return domain.Account{}, domain.ErrAlreadyRegistered()
	}
	acc := domain.Account{Email: email, Password: password}
	f.byEmail[email] = acc
	return acc, nil
}

func (f *fakeAccountStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return domain.Account{}, f.findErr
	}
	acc, ok := f.byEmail[email]
	if !ok {
		return domain.Account{}, domain.ErrEmailNotRegistered()
	}
	return acc, nil
}

func (f *fakeAccountStore) MarkVerified(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.verifyErr != nil {
		return f.verifyErr
	}
	acc, ok := f.byEmail[email]
	if !ok {
		return domain.ErrAccountMissing(email)
	}
	acc.Verified = true
	f.byEmail[email] = acc
	return nil
}

func (f *fakeAccountStore) UpdatePassword(ctx context.Context, email, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	acc, ok := f.byEmail[email]
	if !ok {
		return domain.ErrAccountMissing(email)
	}
	acc.Password = newPassword
	f.byEmail[email] = acc
	return nil
}

func (f *fakeAccountStore) VerifyCredentials(ctx context.Context, email, password string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acc, ok := f.byEmail[email]
	if !ok || acc.Password != password {
		return domain.Account{}, domain.ErrInvalidCredentials()
	}
	return acc, nil
}

type fakeTokenStore struct {
	mu   sync.Mutex
	data map[string]string // kind|token -> email
	seq  int

	issueErr   error
	consumeErr error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{data: map[string]string{}}
}

func (f *fakeTokenStore) key(kind TokenKind, token string) string {
	return string(kind) + "|" + token
}

func (f *fakeTokenStore) Issue(ctx context.Context, kind TokenKind, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.seq++
	token := fmt.Sprintf("%s-token-%d", kind, f.seq)
	f.data[f.key(kind, token)] = email
	return token, nil
}

func (f *fakeTokenStore) Resolve(ctx context.Context, kind TokenKind, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	email, ok := f.data[f.key(kind, token)]
	if !ok {
		return "", domain.ErrInvalidToken()
	}
	return email, nil
}

func (f *fakeTokenStore) Consume(ctx context.Context, kind TokenKind, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.consumeErr != nil {
		return "", f.consumeErr
	}
	k := f.key(kind, token)
	email, ok := f.data[k]
	if !ok {
		return "", domain.ErrInvalidToken()
	}
	delete(f.data, k)
	return email, nil
}

type sentMail struct {
	to      string
	subject string
	html    string
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (f *fakeSender) Send(ctx context.Context, toEmail, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: toEmail, subject: subject, html: htmlBody})
	return nil
}

/*
Helpers
*/

func newSvcForTest(t *testing.T) (*Service, *fakeAccountStore, *fakeTokenStore, *fakeSender) {
	t.Helper()

	accounts := newFakeAccountStore()
	tokens := newFakeTokenStore()
	sender := &fakeSender{}
	svc := NewService(accounts, tokens, sender, Config{LinkBaseURL: "http://localhost:3000"})
	return svc, accounts, tokens, sender
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %q, got %v", code, err)
	}
}
