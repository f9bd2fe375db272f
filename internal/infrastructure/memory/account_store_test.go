package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishguard/internal/domain"
)

func TestAccountStore_RegisterAndFind(t *testing.T) {
	t.Parallel()

	s := NewAccountStore()
	ctx := context.Background()

	acc, err := s.Register(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.Equal(t, domain.Account{Email: "a@x.com", Password: "p1"}, acc)

	got, err := s.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.False(t, got.Verified)

	_, err = s.FindByEmail(ctx, "b@x.com")
	require.True(t, domain.Is(err, "email_not_registered"))
}

func TestAccountStore_RegisterTwice_KeepsFirstPassword(t *testing.T) {
	t.Parallel()

	s := NewAccountStore()
	ctx := context.Background()

	_, err := s.Register(ctx, "a@x.com", "p1")
	require.NoError(t, err)

	_, err = s.Register(ctx, "a@x.com", "p2")
	require.True(t, domain.Is(err, "already_registered"))

	got, err := s.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "p1", got.Password)
}

func TestAccountStore_MarkVerified(t *testing.T) {
	t.Parallel()

	s := NewAccountStore()
	ctx := context.Background()

	_, err := s.Register(ctx, "a@x.com", "p1")
	require.NoError(t, err)

	require.NoError(t, s.MarkVerified(ctx, "a@x.com"))
	// Second call is a no-op success.
	require.NoError(t, s.MarkVerified(ctx, "a@x.com"))

	got, _ := s.FindByEmail(ctx, "a@x.com")
	require.True(t, got.Verified)

	err = s.MarkVerified(ctx, "ghost@x.com")
	require.True(t, domain.Is(err, "account_missing"))
}

func TestAccountStore_UpdatePassword_LeavesVerifiedFlag(t *testing.T) {
	t.Parallel()

	s := NewAccountStore()
	ctx := context.Background()

	_, err := s.Register(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.NoError(t, s.MarkVerified(ctx, "a@x.com"))

	require.NoError(t, s.UpdatePassword(ctx, "a@x.com", "p2"))

	got, _ := s.FindByEmail(ctx, "a@x.com")
	require.Equal(t, "p2", got.Password)
	require.True(t, got.Verified)
}

func TestAccountStore_VerifyCredentials_ExactMatch(t *testing.T) {
	t.Parallel()

	s := NewAccountStore()
	ctx := context.Background()

	_, err := s.Register(ctx, "a@x.com", "p1")
	require.NoError(t, err)

	_, err = s.VerifyCredentials(ctx, "a@x.com", "P1")
	require.True(t, domain.Is(err, "invalid_credentials"))

	_, err = s.VerifyCredentials(ctx, "ghost@x.com", "p1")
	require.True(t, domain.Is(err, "invalid_credentials"))

	acc, err := s.VerifyCredentials(ctx, "a@x.com", "p1")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", acc.Email)
}

func TestAccountStore_ConcurrentRegisters_OneWinner(t *testing.T) {
	t.Parallel()

	s := NewAccountStore()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Register(ctx, "a@x.com", "p1")
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			require.True(t, domain.Is(err, "already_registered"))
		}
	}
	require.Equal(t, 1, ok)
}
