package http_handlers

import (
	"net/http"

	"github.com/phishguard/phishguard/internal/application/authflow"
	"github.com/phishguard/phishguard/internal/domain"
	"github.com/phishguard/phishguard/internal/infrastructure/security"
	"github.com/phishguard/phishguard/internal/logger"
	"github.com/phishguard/phishguard/internal/transport/http/dto"
	"github.com/phishguard/phishguard/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *authflow.Service
	signer        *security.SessionSigner
	secureCookies bool
}

func NewAuthHandler(svc *authflow.Service, signer *security.SessionSigner, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		signer:        signer,
		secureCookies: secureCookies,
	}
}

// setSession signs and attaches the session cookie. A signing failure is
// logged but does not fail the request: the JSON body is the contract,
// the cookie is a convenience.
func (h *AuthHandler) setSession(w http.ResponseWriter, r *http.Request, email string) {
	tok, err := h.signer.Sign(email)
	if err != nil {
		logger.WithCtx(r.Context()).Error().Err(err).Msg("session_sign_failed")
		return
	}
	security.SetSessionCookie(w, tok, h.signer.TTL(), h.secureCookies)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Register(r.Context(), req.Email, req.Password); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().Str("email", req.Email).Msg("registered")
	response.OK(w, dto.MessageResponse{Message: "Login link sent to email"})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	email, err := h.svc.Verify(r.Context(), req.Token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().Str("email", email).Msg("email_verified")
	h.setSession(w, r, email)
	response.OK(w, dto.EmailResponse{Email: email})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	email, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().Str("email", email).Msg("logged_in")
	h.setSession(w, r, email)
	response.OK(w, dto.EmailResponse{Email: email})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().Str("email", req.Email).Msg("reset_link_sent")
	response.OK(w, dto.MessageResponse{Message: "Reset link sent"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageResponse{Message: "Password updated"})
}

// Session restores a session from the cookie so the SPA can survive a
// cleared localStorage. No cookie or a bad one is a 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	tok, err := security.ReadSessionCookie(r)
	if err != nil || tok == "" {
		response.WriteError(w, r, domain.ErrSessionInvalid())
		return
	}

	email, err := h.signer.Verify(tok)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.EmailResponse{Email: email})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionCookie(w, h.secureCookies)
	response.NoContent(w)
}
