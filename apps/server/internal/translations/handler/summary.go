package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

// Summary handles GET /api/summary. It returns directory and index.md
// totals for the same report /api/status serves.
func (h *Handler) Summary(c *gin.Context) {
	nodes, err := h.svc.Report(c.Request.Context())
	if err != nil {
		h.fail(c, err, "status summary failed")
		return
	}

	c.Header("Cache-Control", h.opts.Cache.success())
	c.JSON(http.StatusOK, summaryResponse{
		Summary:  translations.Summarize(nodes),
		Complete: translations.Complete(nodes),
	})
}

type summaryResponse struct {
	translations.Summary
	Complete bool `json:"complete"`
}
