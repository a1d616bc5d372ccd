package handler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

// CachePolicy sets the Cache-Control directives for status responses.
type CachePolicy struct {
	TTL                  time.Duration
	StaleWhileRevalidate time.Duration
	ErrorTTL             time.Duration
}

func (p CachePolicy) success() string {
	return fmt.Sprintf("public, max-age=0, s-maxage=%d, stale-while-revalidate=%d",
		int(p.TTL.Seconds()), int(p.StaleWhileRevalidate.Seconds()))
}

func (p CachePolicy) failure() string {
	return fmt.Sprintf("public, max-age=0, s-maxage=%d", int(p.ErrorTTL.Seconds()))
}

// Options carries presentation settings for the handlers.
type Options struct {
	Cache    CachePolicy
	RepoName string // "owner/repo"
	RepoURL  string
}

// Handler translates HTTP requests into calls on the translations.Service.
type Handler struct {
	svc  *translations.Service
	opts Options
	log  *slog.Logger
}

// RegisterRoutes mounts the status API and page onto the given Gin engine.
func RegisterRoutes(r *gin.Engine, svc *translations.Service, opts Options, log *slog.Logger) {
	h := &Handler{svc: svc, opts: opts, log: log}

	r.GET("/", h.Page)
	r.GET("/api/status", h.Status)
	r.GET("/api/summary", h.Summary)
	r.GET("/health", h.Health)
}
