package adapters

import (
	"context"
	"encoding/base64"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

// Compile-time check: *InMem implements translations.ContentFetcher.
var _ translations.ContentFetcher = (*InMem)(nil)

// InMem is an in-memory translations.ContentFetcher for unit tests.
// Directories are implied by file paths; SetDir adds an empty one.
type InMem struct {
	mu       sync.Mutex
	files    map[string]string // path -> plain text content
	dirs     map[string]bool
	failures map[string]int // path -> status code returned as FetchError
	raw      map[string]*translations.FetchResult

	// Delay is slept inside every Fetch, after the in-flight counter is raised.
	Delay time.Duration

	calls       map[string]int
	inFlight    int
	maxInFlight int
}

// NewInMem creates an empty InMem fetcher.
func NewInMem() *InMem {
	return &InMem{
		files:    make(map[string]string),
		dirs:     make(map[string]bool),
		failures: make(map[string]int),
		raw:      make(map[string]*translations.FetchResult),
		calls:    make(map[string]int),
	}
}

// SetFile seeds a file; its parent directories come into existence implicitly.
func (m *InMem) SetFile(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

// SetDir seeds an empty directory.
func (m *InMem) SetDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// Fail makes every fetch of path return a FetchError with the given status.
func (m *InMem) Fail(path string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[path] = status
}

// SetRaw makes fetches of path return res verbatim.
func (m *InMem) SetRaw(path string, res *translations.FetchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw[path] = res
}

// Calls returns how many times path was fetched.
func (m *InMem) Calls(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[path]
}

// MaxInFlight returns the highest number of concurrent Fetch calls observed.
func (m *InMem) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// Fetch returns a file descriptor, a listing, or a FetchError with status 404.
func (m *InMem) Fetch(ctx context.Context, path string) (*translations.FetchResult, error) {
	m.enter(path)
	defer m.leave()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, translations.FetchError{Path: path, Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if code, ok := m.failures[path]; ok {
		return nil, translations.FetchError{Path: path, StatusCode: code}
	}
	if res, ok := m.raw[path]; ok {
		return res, nil
	}
	if content, ok := m.files[path]; ok {
		encoded := base64.StdEncoding.EncodeToString([]byte(content))
		return &translations.FetchResult{File: &translations.FileDescriptor{
			Name:     baseName(path),
			Path:     path,
			Type:     translations.EntryFile,
			Encoding: "base64",
			Content:  &encoded,
		}}, nil
	}

	entries, ok := m.listDir(path)
	if !ok {
		return nil, translations.FetchError{Path: path, StatusCode: 404}
	}
	return &translations.FetchResult{Entries: entries}, nil
}

// listDir returns the immediate children of dirPath. Must hold m.mu.
func (m *InMem) listDir(dirPath string) ([]translations.Entry, bool) {
	prefix := dirPath
	if prefix != "" {
		prefix += "/"
	}

	found := dirPath == "" || m.dirs[dirPath]
	seen := make(map[string]bool)
	var entries []translations.Entry

	add := func(p string, isFile bool) {
		if !strings.HasPrefix(p, prefix) {
			return
		}
		found = true
		rest := p[len(prefix):]
		if rest == "" {
			return
		}
		name, _, nested := strings.Cut(rest, "/")
		if seen[name] {
			return
		}
		seen[name] = true
		entType := translations.EntryDir
		if isFile && !nested {
			entType = translations.EntryFile
		}
		entries = append(entries, translations.Entry{
			Name: name,
			Path: prefix + name,
			Type: entType,
		})
	}
	for p := range m.files {
		add(p, true)
	}
	for p := range m.dirs {
		add(p, false)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, found
}

func (m *InMem) enter(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[path]++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
}

func (m *InMem) leave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
