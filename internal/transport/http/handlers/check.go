package http_handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/phishguard/phishguard/internal/domain"
	"github.com/phishguard/phishguard/internal/transport/http/dto"
	"github.com/phishguard/phishguard/internal/transport/http/response"
)

// URLChecker is the port for the external phishing-scoring service.
type URLChecker interface {
	Check(ctx context.Context, url string) (json.RawMessage, error)
}

type CheckHandler struct {
	checker URLChecker
}

func NewCheckHandler(checker URLChecker) *CheckHandler {
	return &CheckHandler{checker: checker}
}

// Check relays a URL verdict from the scoring service. The verdict JSON is
// passed through untouched so the SPA sees whatever the model produced.
func (h *CheckHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		response.WriteError(w, r, domain.ErrMissingURL())
		return
	}

	verdict, err := h.checker.Check(r.Context(), req.URL)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(verdict)
}
