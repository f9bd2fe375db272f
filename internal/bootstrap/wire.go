package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/phishguard/phishguard/internal/application/authflow"
	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/infrastructure/classifier"
	"github.com/phishguard/phishguard/internal/infrastructure/memory"
	"github.com/phishguard/phishguard/internal/infrastructure/redis"
	"github.com/phishguard/phishguard/internal/infrastructure/security"
	"github.com/phishguard/phishguard/internal/infrastructure/smtp"
	"github.com/phishguard/phishguard/internal/logger"
	"github.com/phishguard/phishguard/internal/metrics"
	http_handlers "github.com/phishguard/phishguard/internal/transport/http/handlers"
	"github.com/phishguard/phishguard/internal/transport/http/middleware"
	"github.com/phishguard/phishguard/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewSender func(cfg *config.Config) authflow.Sender

	NewChecker func(cfg *config.Config) http_handlers.URLChecker

	NewRouter func(router.Deps) (http.Handler, error)
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) stores (memory by default, redis-backed tokens when reachable)
	accounts := memory.NewAccountStore()

	var tokens authflow.TokenStore = memory.NewTokenStore()
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; using in-memory token store")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			if rc, ok := c.(*redis.Client); ok {
				tokens = redis.NewTokenStore(rc)
			}
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 2) mail sender
	sender := deps.NewSender(cfg)
	sender = instrumentedSender{next: sender}

	// 3) service
	svc := authflow.NewService(accounts, tokens, sender, authflow.Config{
		LinkBaseURL: cfg.LinkBaseURL,
	})
	svc = svc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")
	})

	// 4) session signing
	secret := cfg.SessionSecret
	if secret == "" {
		// dev only; config.Load rejects an empty secret outside dev
		secret = randomSecret()
		logger.Logger.Warn().Msg("SESSION_SECRET unset; using a random per-process secret")
	}
	signer := security.NewSessionSigner(secret, "phishguard", cfg.SessionTTL)

	// 5) handlers + middleware
	secureCookies := cfg.Env != "dev"

	authH := http_handlers.NewAuthHandler(svc, signer, secureCookies)
	checkH := http_handlers.NewCheckHandler(deps.NewChecker(cfg))
	healthH := http_handlers.NewHealthHandler()

	// 6) router
	mux, err := deps.NewRouter(router.Deps{
		Health:  healthH,
		Auth:    authH,
		Check:   checkH,
		Metrics: metrics.Handler(),
		Middlewares: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.AccessLog,
			middleware.Metrics,
			middleware.CORS(cfg.CORSAllowedOrigins),
			middleware.BodyLimit(1 << 20),
		},
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewSender: func(cfg *config.Config) authflow.Sender {
			if cfg.SMTPHost == "" {
				logger.Logger.Warn().Msg("SMTP_HOST unset; mail is logged, not delivered")
				return memory.NewLogSender(logger.Logger)
			}
			return smtp.NewSender(smtp.Config{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUsername,
				Password: cfg.SMTPPassword,
				From:     cfg.SMTPFrom,
				Timeout:  cfg.SMTPTimeout,
				Insecure: cfg.SMTPInsecure,
			}, logger.Logger)
		},
		NewChecker: func(cfg *config.Config) http_handlers.URLChecker {
			return classifier.New(cfg.ClassifierURL, cfg.ClassifierTimeout, logger.Logger)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

// instrumentedSender counts delivery outcomes per mail kind.
type instrumentedSender struct {
	next authflow.Sender
}

func (s instrumentedSender) Send(ctx context.Context, toEmail, subject, htmlBody string) error {
	kind := "verify"
	if subject == "Password Reset" {
		kind = "reset"
	}

	err := s.next.Send(ctx, toEmail, subject, htmlBody)
	if err != nil {
		metrics.ObserveEmail(kind, "error")
		return err
	}
	metrics.ObserveEmail(kind, "ok")
	return nil
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
