// Package app wires configuration, stores and the HTTP surface into a
// runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/dashboard-workspace/internal/api"
	"github.com/99minutos/dashboard-workspace/internal/api/handler"
	"github.com/99minutos/dashboard-workspace/internal/api/metrics"
	"github.com/99minutos/dashboard-workspace/internal/core/identity"
	"github.com/99minutos/dashboard-workspace/internal/core/service"
	"github.com/99minutos/dashboard-workspace/internal/infrastructure/db/redis"
	"github.com/99minutos/dashboard-workspace/internal/infrastructure/http/handlers"
	"github.com/99minutos/dashboard-workspace/internal/infrastructure/oauth"
	"github.com/99minutos/dashboard-workspace/internal/infrastructure/pubsub"
	"github.com/99minutos/dashboard-workspace/internal/pkg/config"
	"github.com/99minutos/dashboard-workspace/internal/workspace"
)

type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	server  *http.Server
	hub     *pubsub.SessionHub
	watcher *workspace.Watcher
	stores  *stores
	redis   *goredis.Client

	// cancelConns ends hijacked websocket connections on shutdown.
	cancelConns context.CancelFunc
}

// New connects every backing service and builds the router. Nothing listens
// until Run is called.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", st.driver).Msg("store connected")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = st.close(ctx)
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	source, watcher := layoutSource(cfg.LayoutFile, log)

	hub := pubsub.NewSessionHub(log)
	notifier := metrics.InstrumentNotifier(hub)
	revoker := redis.NewTokenRevoker(rdb)
	idp := identity.NewContextProvider()

	authService := service.NewAuthService(st.users, revoker, notifier, cfg.JWTSecret, cfg.TokenTTL, log).
		WithAdmins(cfg.AdminEmails...)
	dashboards := metrics.InstrumentDashboards(service.NewDashboardService(st.dashboards, idp, log))
	workspaces := service.NewWorkspaceService(redis.NewLayoutStore(rdb, 0), source, idp, log)

	google := oauth.NewGoogleProvider(oauth.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})
	if !google.Enabled() {
		log.Info().Msg("google sign-in disabled, GOOGLE_CLIENT_ID not set")
	}

	router := api.NewRouter(api.Deps{
		Logger:        log,
		JWTSecret:     cfg.JWTSecret,
		SessionSecret: cfg.SessionSecret,
		Auth:          authService,
		Revoker:       revoker,
		Dashboards:    dashboards,
		Workspace:     workspaces,
		Notifier:      notifier,
		OAuth:         google,
		Cookies: handler.CookieConfig{
			Secure:       cfg.Cookie.Secure,
			TTL:          cfg.TokenTTL,
			PostLoginURL: cfg.Cookie.PostLoginURL,
		},
		HealthChecks: map[string]handlers.Check{
			st.driver: st.check,
			"redis":   handlers.RedisCheck(rdb),
		},
	})

	connCtx, cancelConns := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		BaseContext:       func(net.Listener) context.Context { return connCtx },
	}

	return &App{
		cfg:         cfg,
		log:         log,
		server:      server,
		hub:         hub,
		watcher:     watcher,
		stores:      st,
		redis:       rdb,
		cancelConns: cancelConns,
	}, nil
}

// layoutSource loads LAYOUT_FILE when set. A missing or broken file falls back
// to the built-in layout and is picked up again once the watcher sees it change.
func layoutSource(path string, log zerolog.Logger) (*workspace.Source, *workspace.Watcher) {
	if path == "" {
		return workspace.NewSource(nil), nil
	}

	fs := afero.NewOsFs()
	m, err := workspace.Load(fs, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("layout file unusable, serving the built-in layout")
	}
	source := workspace.NewSource(m)

	watcher := workspace.NewWatcher(fs, path, source, log)
	watcher.OnReload = func(m *workspace.Model) {
		log.Info().Str("path", path).Int("tabs", len(m.Tabs())).Msg("layout reloaded")
	}
	return source, watcher
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts
// everything down within SHUTDOWN_TIMEOUT.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info().Str("addr", a.server.Addr).Msg("http server listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	if a.watcher != nil {
		g.Go(func() error {
			if err := a.watcher.Run(gctx); err != nil {
				a.log.Error().Err(err).Msg("layout watcher stopped")
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info().Msg("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		a.cancelConns()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()
	a.close()
	return err
}

func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.hub.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close session hub")
	}
	if err := a.redis.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close redis")
	}
	if err := a.stores.close(ctx); err != nil {
		a.log.Warn().Err(err).Str("driver", a.stores.driver).Msg("failed to close store")
	}
	a.log.Info().Msg("stopped cleanly")
}
