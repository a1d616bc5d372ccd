package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

// Status handles GET /api/status. It walks the repository and returns the
// top-level status nodes.
func (h *Handler) Status(c *gin.Context) {
	nodes, err := h.svc.Report(c.Request.Context())
	if err != nil {
		h.fail(c, err, "status report failed")
		return
	}

	c.Header("Cache-Control", h.opts.Cache.success())
	c.JSON(http.StatusOK, nodes)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail writes the JSON error body for a failed report.
func (h *Handler) fail(c *gin.Context, err error, msg string) {
	code := h.failure(c, err, msg)
	c.JSON(code, gin.H{"error": err.Error()})
}

// failure logs a failed report, sets the short error cache header and
// returns the response status.
func (h *Handler) failure(c *gin.Context, err error, msg string) int {
	code := statusCode(err)
	h.log.Error(msg, "error", err, "status", code)
	c.Header("Cache-Control", h.opts.Cache.failure())
	return code
}

// statusCode passes authorization failures from the content host through
// and maps everything else to 500.
func statusCode(err error) int {
	var fetchErr translations.FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fetchErr.StatusCode
		}
	}
	return http.StatusInternalServerError
}
