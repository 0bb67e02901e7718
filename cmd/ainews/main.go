package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/savelevaok/ainews/internal/cache"
	"github.com/savelevaok/ainews/internal/config"
	"github.com/savelevaok/ainews/internal/fetch"
	"github.com/savelevaok/ainews/internal/service"
	"github.com/savelevaok/ainews/internal/sources"
	"github.com/savelevaok/ainews/internal/storage"
	storagemongo "github.com/savelevaok/ainews/internal/storage/mongo"
	"github.com/savelevaok/ainews/internal/summary"
	transport "github.com/savelevaok/ainews/internal/transport/http"
	logctx "github.com/savelevaok/ainews/pkg/log"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting ainews", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	rootCtx = logctx.Into(rootCtx, log)

	// Tier-2 опционален: без него (или при недоступном Mongo) сервис
	// деградирует до одного in-process уровня кэша, а не падает.
	var store storage.Storage
	if cfg.DB.URL != "" {
		dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
		m, err := storagemongo.New(dbCtx, cfg.DB.URL)
		dbCancel()
		if err != nil {
			log.Warn("mongo_unavailable_degrading_to_memory_cache", slog.String("err", err.Error()))
		} else {
			store = m
			log.Info("mongo_connected")
		}
	} else {
		log.Info("mongo_not_configured_memory_cache_only")
	}

	httpClient := &http.Client{Timeout: cfg.Fetch.Timeout}

	fetchers := []fetch.Fetcher{
		fetch.NewRSS(httpClient, sources.All(), cfg.Fetch.MaxConcurrentFeeds),
		fetch.NewHackerNews(httpClient, "", cfg.Fetch.HackerNewsLimit),
		fetch.NewGDELT(httpClient, "", cfg.Fetch.GDELTQuery),
		fetch.NewArxiv(httpClient, "", cfg.Fetch.ArxivQuery, cfg.Fetch.ArxivLimit),
		fetch.NewNewsAPI(httpClient, "", cfg.Fetch.NewsAPIKey, cfg.Fetch.NewsAPIQuery),
	}

	mem := cache.NewMemory(cfg.Cache.MemoryTTL)
	svc := service.New(*cfg, fetchers, mem, store)
	summarizer := summary.New(cfg.Summary)
	log.Info("service_initialized", slog.Int("adapters", len(fetchers)))

	go svc.StartRefresh(rootCtx)

	router := transport.NewRouter(svc, summarizer, transport.Options{
		Logger:               log,
		Timeout:              cfg.Timeouts.HTTP,
		CacheMaxAge:          cfg.HTTP.CacheMaxAge,
		StaleWhileRevalidate: cfg.HTTP.StaleWhileRevalidate,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
	}
	shutdownCancel()

	if store != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.Close(closeCtx); err != nil {
			log.Warn("mongo_close_error", slog.String("err", err.Error()))
		}
		closeCancel()
	}

	log.Info("service_stopped")
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default: // envLocal и все прочие значения.
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
}
