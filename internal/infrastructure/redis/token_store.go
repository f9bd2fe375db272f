package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/phishguard/phishguard/internal/application/authflow"
	"github.com/phishguard/phishguard/internal/domain"
)

// TokenStore backs one-time tokens with redis so a restart does not drop
// in-flight verification links. TTL zero keeps the default contract:
// tokens live until consumed.
type TokenStore struct {
	rdb    *goredis.Client
	prefix string // "ott:"
}

func NewTokenStore(c *Client) *TokenStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &TokenStore{
		rdb:    rdb,
		prefix: "ott:",
	}
}

func (s *TokenStore) Issue(ctx context.Context, kind authflow.TokenKind, email string) (string, error) {
	email = strings.TrimSpace(email)
	if s.rdb == nil {
		return "", errors.New("redis token store not configured")
	}

	token := uuid.NewString()
	// expiration 0 = persist until consumed
	if err := s.rdb.Set(ctx, s.key(kind, token), email, 0).Err(); err != nil {
		return "", fmt.Errorf("token issue: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Resolve(ctx context.Context, kind authflow.TokenKind, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrInvalidToken()
	}
	if s.rdb == nil {
		return "", errors.New("redis token store not configured")
	}

	email, err := s.rdb.Get(ctx, s.key(kind, token)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", domain.ErrInvalidToken()
		}
		return "", fmt.Errorf("token resolve: %w", err)
	}
	if email == "" {
		return "", domain.ErrInvalidToken()
	}
	return email, nil
}

func (s *TokenStore) Consume(ctx context.Context, kind authflow.TokenKind, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrInvalidToken()
	}
	if s.rdb == nil {
		return "", errors.New("redis token store not configured")
	}

	// Atomic GET + DEL so two concurrent consumers cannot both win.
	const lua = `
local v = redis.call("GET", KEYS[1])
if not v then
  return nil
end
redis.call("DEL", KEYS[1])
return v
`
	res, err := s.rdb.Eval(ctx, lua, []string{s.key(kind, token)}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", domain.ErrInvalidToken()
		}
		return "", fmt.Errorf("token consume: %w", err)
	}
	if res == nil {
		return "", domain.ErrInvalidToken()
	}

	email, ok := res.(string)
	if !ok || email == "" {
		return "", domain.ErrInvalidToken()
	}
	return email, nil
}

func (s *TokenStore) key(kind authflow.TokenKind, token string) string {
	// kind is a controlled constant ("verify"/"reset")
	return s.prefix + string(kind) + ":" + token
}
