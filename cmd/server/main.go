package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fengguoheng/shopauth/internal/gateway"
	"github.com/fengguoheng/shopauth/internal/oauth"
	"github.com/fengguoheng/shopauth/internal/user"
	"github.com/fengguoheng/shopauth/pkg/config"
	"github.com/fengguoheng/shopauth/pkg/cookie"
	"github.com/fengguoheng/shopauth/pkg/credential"
	"github.com/fengguoheng/shopauth/pkg/httpserver"
	"github.com/fengguoheng/shopauth/pkg/logger"
	"github.com/fengguoheng/shopauth/pkg/pg"
	"github.com/fengguoheng/shopauth/pkg/redis"
	"github.com/fengguoheng/shopauth/pkg/session"
)

type appConfig struct {
	// Env selects logger behavior and cookie security. One of
	// "development" or "production".
	Env string `env:"APP_ENV" envDefault:"development"`

	// SessionSecrets sign session and state cookies. Comma-separated;
	// the first entry signs, all entries verify.
	SessionSecrets []string `env:"SESSION_SECRET,required" envSeparator:","`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg     appConfig
		pgCfg      pg.Config
		redisCfg   redis.Config
		serverCfg  httpserver.Config
		sessionCfg session.Config
		gatewayCfg gateway.Config
		githubCfg  oauth.GitHubConfig
	)
	for _, cfg := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&serverCfg) },
		func() error { return config.Load(&sessionCfg) },
		func() error { return config.Load(&gatewayCfg) },
		func() error { return config.Load(&githubCfg) },
	} {
		if err := cfg(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	log := logger.NewFromEnv(appCfg.Env, "shopauth")
	logger.SetAsDefault(log)

	if appCfg.Env == "production" {
		sessionCfg.SecureCookies = true
		gatewayCfg.SecureCookies = true
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	cookies, err := cookie.New(appCfg.SessionSecrets)
	if err != nil {
		return fmt.Errorf("init cookie manager: %w", err)
	}

	var sessionStore session.Store
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		sessionStore = session.NewRedisStore(client)
		log.InfoContext(ctx, "session store: redis")
	} else {
		sessionStore = session.NewMemoryStore(sessionCfg.CleanupInterval)
		log.InfoContext(ctx, "session store: memory")
	}

	sessions := session.New(
		session.WithStore(sessionStore),
		session.WithConfig(sessionCfg),
		session.WithCookieManager(cookies),
	)

	users := user.NewPostgresStore(pool)
	provider := oauth.NewGitHubProvider(githubCfg)
	svc := gateway.NewService(provider, users, credential.New(gatewayCfg.BcryptCost),
		gateway.WithLogger(log))
	handler := gateway.NewHandler(gatewayCfg, svc, sessions, cookies)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log, pg.Healthcheck(pool)))
	r.Mount("/", handler.Router())

	log.InfoContext(ctx, "starting server",
		slog.String("addr", serverCfg.Addr),
		slog.String("env", appCfg.Env),
		logger.Provider(provider.Name()),
	)

	if err := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log)).Run(ctx, r); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// requestLogger emits one structured line per request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
