package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/phishguard/phishguard/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID honors an inbound X-Request-Id or mints one, reflects it in the
// response and stores it in the request context for the logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)
		ctx := appctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
