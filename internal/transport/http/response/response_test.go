package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishguard/internal/domain"
)

func TestWriteError_DomainErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"already registered", domain.ErrAlreadyRegistered(), http.StatusBadRequest, `{"error":"Email already registered"}`},
		{"invalid token", domain.ErrInvalidToken(), http.StatusBadRequest, `{"error":"Invalid or expired token"}`},
		{"invalid credentials", domain.ErrInvalidCredentials(), http.StatusUnauthorized, `{"error":"Invalid email or password"}`},
		{"not verified", domain.ErrNotVerified(), http.StatusForbidden, `{"error":"Please verify your email before logging in"}`},
		{"email not registered", domain.ErrEmailNotRegistered(), http.StatusNotFound, `{"error":"Email not registered"}`},
		{"delivery failed", domain.ErrDeliveryFailed(errors.New("smtp down")), http.StatusInternalServerError, `{"error":"Failed to send email"}`},
		{"classifier down", domain.ErrClassifierUnavailable(errors.New("refused")), http.StatusBadGateway, `{"error":"Classification service unavailable"}`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal error"}`},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/test", nil)

			WriteError(rec, req, c.err)

			require.Equal(t, c.wantStatus, rec.Code)
			require.JSONEq(t, c.wantBody, rec.Body.String())
			require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type body struct {
		Email string `json:"email"`
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com"}`))
		var b body
		require.NoError(t, DecodeJSON(req, &b))
		require.Equal(t, "a@x.com", b.Email)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
		var b body
		err := DecodeJSON(req, &b)
		require.True(t, domain.Is(err, "invalid_json"))
	})

	t.Run("trailing values", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com"}{}`))
		var b body
		err := DecodeJSON(req, &b)
		require.True(t, domain.Is(err, "invalid_json"))
	})

	t.Run("unknown fields tolerated", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com","extra":1}`))
		var b body
		require.NoError(t, DecodeJSON(req, &b))
	})
}

func TestOK_WritesFlatBody(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"email": "a@x.com"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"email":"a@x.com"}`, rec.Body.String())
}
