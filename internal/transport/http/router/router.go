package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)

	Session(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type CheckHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler
	Check  CheckHandler

	// Served at /metrics when non-nil.
	Metrics http.Handler

	// Applied to every route, outermost first.
	Middlewares []func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Check == nil {
		return nil, fmt.Errorf("nil Check handler")
	}

	r := chi.NewRouter()
	for _, mw := range deps.Middlewares {
		r.Use(mw)
	}

	r.Get("/healthz", deps.Health.Healthz)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register)
		r.Post("/verify", deps.Auth.Verify)
		r.Post("/login", deps.Auth.Login)
		r.Post("/forgot-password", deps.Auth.ForgotPassword)
		r.Post("/reset-password", deps.Auth.ResetPassword)

		r.Get("/session", deps.Auth.Session)
		r.Post("/logout", deps.Auth.Logout)

		r.Post("/check", deps.Check.Check)
	})

	return r, nil
}
