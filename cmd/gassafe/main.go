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

	"github.com/use-agent/gassafe/api"
	"github.com/use-agent/gassafe/config"
	"github.com/use-agent/gassafe/engine"
	"github.com/use-agent/gassafe/scraper"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("gassafe starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.ScrapeMode,
		"maxSessions", cfg.Browser.MaxSessions,
		"auth", cfg.Auth.APIKey != "",
	)

	// ── 3. Select scrape strategy ───────────────────────────────────
	strategy, sc, err := newStrategy(cfg)
	if err != nil {
		slog.Error("failed to initialise scrape strategy", "error", err)
		os.Exit(1)
	}
	slog.Info("scrape strategy selected", "strategy", strategy.Name())
	if sc != nil {
		st := sc.Stats()
		slog.Info("browser session pool ready", "maxSessions", st.MaxSessions, "poolWait", cfg.Browser.PoolWait)
	}

	// ── 4. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(strategy, cfg)

	// ── 5. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr,
			"endpoint", "POST /api/gas-safe-scrape", "health", "GET /health")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 6. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout(cfg))
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}
	if sc != nil {
		if st := sc.Stats(); st.ActiveSessions > 0 {
			slog.Warn("browser sessions still active at exit", "active", st.ActiveSessions)
		}
	}

	slog.Info("gassafe stopped")
}

// drainTimeout bounds the longest a request can still run once accepted:
// queueing for a session, then every pipeline stage including the
// results page read.
func drainTimeout(cfg *config.Config) time.Duration {
	return cfg.Browser.PoolWait +
		cfg.Scraper.NavigationTimeout +
		cfg.Scraper.InputTimeout +
		2*cfg.Scraper.ResultTimeout
}

// newStrategy builds the configured strategy. Live mode falls back to
// degraded mode only when explicitly allowed and no browser can be found.
// The returned Scraper is nil unless live mode was selected.
func newStrategy(cfg *config.Config) (engine.Strategy, *scraper.Scraper, error) {
	mode := cfg.Server.ScrapeMode
	if mode == engine.ModeLive && !scraper.BrowserAvailable(cfg.Browser) && cfg.Server.FallbackDegraded {
		slog.Warn("no browser binary found, falling back to degraded mode")
		mode = engine.ModeDegraded
	}

	if mode != engine.ModeLive {
		strategy, err := engine.New(mode, nil)
		return strategy, nil, err
	}

	sessions := scraper.NewSessionManager(
		cfg.Browser.MaxSessions,
		cfg.Browser.PoolWait,
		scraper.NewRodSessionFactory(cfg.Browser, cfg.Scraper),
	)
	sc := scraper.NewScraper(sessions, scraper.NewSearcher(cfg.Scraper, scraper.DefaultSelectors()))
	strategy, err := engine.New(mode, sc.Scrape)
	if err != nil {
		return nil, nil, err
	}
	return strategy, sc, nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
