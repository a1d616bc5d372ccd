// Package githubfake serves a GitHub-compatible contents API from memory.
// It backs the mock-github app for local development and the GitHub
// fetcher tests.
package githubfake

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// ContentEntry mirrors the fields of a contents API item that clients read.
type ContentEntry struct {
	Type     string `json:"type"` // "file" or "dir"
	Name     string `json:"name"`
	Path     string `json:"path"`
	HTMLURL  string `json:"html_url"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content,omitempty"`
}

// Store holds repository files keyed by "owner/repo" then path.
type Store struct {
	mu       sync.RWMutex
	files    map[string]map[string]string
	failures map[string]int // "owner/repo/path" -> status
	token    string
	webURL   string
	ref      string
}

// NewStore creates an empty store whose html_url links point at webURL.
// ref is the default branch named in links when a request has no ?ref=.
func NewStore(webURL, ref string) *Store {
	return &Store{
		files:    make(map[string]map[string]string),
		failures: make(map[string]int),
		webURL:   strings.TrimSuffix(webURL, "/"),
		ref:      ref,
	}
}

// RequireToken makes every API request without "Bearer <token>" fail with 401.
func (s *Store) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetFile seeds a file on the default branch.
func (s *Store) SetFile(owner, repo, path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := owner + "/" + repo
	if s.files[key] == nil {
		s.files[key] = make(map[string]string)
	}
	s.files[key][path] = content
}

// Fail makes requests for path answer with status and a GitHub error body.
func (s *Store) Fail(owner, repo, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[owner+"/"+repo+"/"+path] = status
}

func (s *Store) failure(owner, repo, path string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.failures[owner+"/"+repo+"/"+path]
	return code, ok
}

func (s *Store) getFile(owner, repo, path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[owner+"/"+repo][path]
	return content, ok
}

// listDir returns the immediate children of dirPath, similar to GitHub's
// GET /repos/:owner/:repo/contents/:path when :path is a directory.
func (s *Store) listDir(owner, repo, ref, dirPath string) ([]ContentEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, ok := s.files[owner+"/"+repo]
	if !ok {
		return nil, false
	}

	prefix := dirPath
	if prefix != "" {
		prefix += "/"
	}

	seen := map[string]bool{}
	entries := []ContentEntry{}
	for filePath := range files {
		if !strings.HasPrefix(filePath, prefix) {
			continue
		}
		name, _, nested := strings.Cut(filePath[len(prefix):], "/")
		if seen[name] {
			continue
		}
		seen[name] = true
		entryType, kind := "file", "blob"
		if nested {
			entryType, kind = "dir", "tree"
		}
		entries = append(entries, ContentEntry{
			Type:    entryType,
			Name:    name,
			Path:    prefix + name,
			HTMLURL: fmt.Sprintf("%s/%s/%s/%s/%s/%s", s.webURL, owner, repo, kind, ref, prefix+name),
		})
	}
	if len(entries) == 0 && dirPath != "" {
		return nil, false
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, true
}

// RegisterRoutes mounts the contents API onto r.
func (s *Store) RegisterRoutes(r *gin.Engine) {
	r.GET("/repos/:owner/:repo/contents/*path", s.contents)
}

// Handler returns a standalone http.Handler serving the contents API.
func (s *Store) Handler() http.Handler {
	r := gin.New()
	s.RegisterRoutes(r)
	return r
}

// contents returns a single file object for exact path matches, or a
// directory listing array when the path is a directory prefix.
func (s *Store) contents(c *gin.Context) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" && c.GetHeader("Authorization") != "Bearer "+token {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Bad credentials"})
		return
	}

	owner := c.Param("owner")
	repo := c.Param("repo")
	path := strings.Trim(c.Param("path"), "/")
	ref := c.DefaultQuery("ref", s.ref)

	if code, ok := s.failure(owner, repo, path); ok {
		c.JSON(code, gin.H{"message": http.StatusText(code)})
		return
	}

	if content, ok := s.getFile(owner, repo, path); ok {
		c.JSON(http.StatusOK, ContentEntry{
			Type:     "file",
			Name:     path[strings.LastIndex(path, "/")+1:],
			Path:     path,
			HTMLURL:  fmt.Sprintf("%s/%s/%s/blob/%s/%s", s.webURL, owner, repo, ref, path),
			Encoding: "base64",
			Content:  wrap(base64.StdEncoding.EncodeToString([]byte(content)), 60),
		})
		return
	}

	entries, ok := s.listDir(owner, repo, ref, path)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// wrap inserts a newline every n characters, as GitHub does for base64 content.
func wrap(s string, n int) string {
	var b strings.Builder
	for len(s) > n {
		b.WriteString(s[:n])
		b.WriteByte('\n')
		s = s[n:]
	}
	b.WriteString(s)
	return b.String()
}
