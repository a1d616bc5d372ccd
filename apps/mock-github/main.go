// Command mock-github serves a GitHub-compatible contents API over a seeded
// documentation repository, so the server can run without network access.
package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tilsley/docstatus/pkg/githubfake"
	"github.com/tilsley/docstatus/pkg/logging"
)

func main() {
	log := logging.New("mock-github")

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	ref := os.Getenv("MOCK_GITHUB_REF")
	if ref == "" {
		ref = seedRef
	}

	s := githubfake.NewStore("http://localhost:"+port, ref)
	seedRepos(s)
	log.Info("seeded repos", "repo", seedOwner+"/"+seedRepo, "files", len(docsTree))

	if token := os.Getenv("MOCK_GITHUB_TOKEN"); token != "" {
		s.RequireToken(token)
		log.Info("requiring bearer token")
	}
	for path, status := range parseFailures(os.Getenv("MOCK_GITHUB_FAIL")) {
		s.Fail(seedOwner, seedRepo, path, status)
		log.Info("injecting failure", "path", path, "status", status)
	}

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.RegisterRoutes(r)

	log.Info("mock-github starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// parseFailures reads "path=status" pairs separated by commas,
// e.g. "tools/nmap=500,=401". An empty path is the repository root.
func parseFailures(v string) map[string]int {
	out := make(map[string]int)
	for _, pair := range strings.Split(v, ",") {
		path, code, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		status, err := strconv.Atoi(code)
		if err != nil || status < 400 || status > 599 {
			continue
		}
		out[strings.Trim(path, "/")] = status
	}
	return out
}
