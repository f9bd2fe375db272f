package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/phishguard/phishguard/internal/domain"
	"github.com/phishguard/phishguard/internal/logger"
)

// ErrorBody is the flat failure shape the SPA matches on:
// {"error": "<message>"} with nothing else in it.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteError converts a domain error into the contract's JSON error
// response. Non-domain errors become a 500 without leaking details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		message = de.Message
	}

	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Error: message})
}

// statusFromKind maps domain error kinds to HTTP status codes.
func statusFromKind(kind domain.ErrKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUpstream:
		return http.StatusBadGateway
	case domain.KindDelivery, domain.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
