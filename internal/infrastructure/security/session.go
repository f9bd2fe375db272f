package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phishguard/phishguard/internal/domain"
)

// SessionSigner issues the signed session cookie set on successful login
// and verification. The JSON bodies the SPA reads stay email-only; the
// cookie lets the server vouch for a session without trusting localStorage.
type SessionSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewSessionSigner(secret, issuer string, ttl time.Duration) *SessionSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionSigner{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

func (s *SessionSigner) TTL() time.Duration { return s.ttl }

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *SessionSigner) Sign(email string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrInternal(err)
	}
	return signed, nil
}

// Verify returns the email a valid session token vouches for. Expired,
// malformed and wrongly-signed tokens all map to the same domain error.
func (s *SessionSigner) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrSessionInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", domain.ErrSessionInvalid()
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.Email == "" {
		return "", domain.ErrSessionInvalid()
	}
	return claims.Email, nil
}
