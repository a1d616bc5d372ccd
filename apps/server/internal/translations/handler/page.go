package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

type pageData struct {
	RepoName    string
	RepoURL     string
	Nodes       []*translations.Node
	Summary     translations.Summary
	Error       string
	GeneratedAt string
}

// Page handles GET / and renders the status tree as nested collapsible lists.
func (h *Handler) Page(c *gin.Context) {
	data := pageData{
		RepoName:    h.opts.RepoName,
		RepoURL:     h.opts.RepoURL,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	code := http.StatusOK
	nodes, err := h.svc.Report(c.Request.Context())
	if err != nil {
		code = h.failure(c, err, "status page failed")
		data.Error = err.Error()
	} else {
		data.Nodes = nodes
		data.Summary = translations.Summarize(nodes)
		c.Header("Cache-Control", h.opts.Cache.success())
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.log.Error("render status page failed", "error", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(code, "text/html; charset=utf-8", buf.Bytes())
}
