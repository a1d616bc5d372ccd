package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tilsley/docstatus/apps/server/internal/config"
	"github.com/tilsley/docstatus/apps/server/internal/platform/github"
	"github.com/tilsley/docstatus/apps/server/internal/platform/telemetry"
	"github.com/tilsley/docstatus/apps/server/internal/platform/validation"
	"github.com/tilsley/docstatus/apps/server/internal/translations"
	"github.com/tilsley/docstatus/apps/server/internal/translations/adapters"
	"github.com/tilsley/docstatus/apps/server/internal/translations/handler"
	"github.com/tilsley/docstatus/apps/server/internal/translations/store"
	"github.com/tilsley/docstatus/pkg/logging"
	"github.com/tilsley/docstatus/schemas"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	log := logging.New("docstatus-server")
	if err := run(log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// --- Observability ---

	ctx := context.Background()
	tel, err := telemetry.New(ctx, telemetry.Options{Enabled: cfg.OTelEnabled, Version: version})
	if err != nil {
		return fmt.Errorf("telemetry init: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", "error", err)
		}
	}()

	// --- Platform: GitHub ---

	creds := cfg.Credentials()
	if !creds.Present() {
		log.Warn("no GitHub credential configured; status requests will fail until GITHUB_TOKEN is set")
	}
	gh, err := github.NewClient(creds, cfg.GitHub.APIURL)
	if err != nil {
		return fmt.Errorf("github client: %w", err)
	}

	// --- Platform: Redis (optional report cache) ---

	var cache translations.ReportCache
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		defer rdb.Close() //nolint:errcheck // close errors on shutdown are non-actionable
		cache = store.NewRedisReportCache(rdb, cfg.Repo.Owner, cfg.Repo.Name, cfg.Repo.Ref, cfg.Cache.TTL)
		log.Info("report cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	// --- Service + HTTP ---

	fetcher := adapters.NewGitHubFetcher(gh, cfg.Repo.Owner, cfg.Repo.Name, cfg.Repo.Ref)
	agg := translations.NewAggregator(fetcher, cfg.Aggregator(), log)
	svc := translations.NewService(agg, cache, creds.Present(), log)

	validator, err := validation.New(schemas.OpenAPISpec)
	if err != nil {
		return fmt.Errorf("openapi validation middleware init: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(telemetry.ServiceName()), validator)

	links := cfg.Links()
	handler.RegisterRoutes(router, svc, handler.Options{
		Cache: handler.CachePolicy{
			TTL:                  cfg.Cache.TTL,
			StaleWhileRevalidate: cfg.Cache.StaleWhileRevalidate,
			ErrorTTL:             cfg.Cache.ErrorTTL,
		},
		RepoName: cfg.Repo.Owner + "/" + cfg.Repo.Name,
		RepoURL:  links.Repository(),
	}, log)

	log.Info("starting docstatus",
		"port", cfg.Port,
		"repo", cfg.Repo.Owner+"/"+cfg.Repo.Name,
		"ref", cfg.Repo.Ref,
		"concurrency", cfg.Walk.Concurrency,
	)
	return router.Run(":" + cfg.Port)
}
