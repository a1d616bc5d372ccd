package translations

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Status is the translation state of a file or directory node.
type Status string

const (
	// StatusGreen means fully translated.
	StatusGreen Status = "green"
	// StatusYellow means the subtree is partially translated. Never used for files.
	StatusYellow Status = "yellow"
	// StatusRed means not translated, absent or unreadable.
	StatusRed Status = "red"
)

// EntryType is the kind of a repository path as reported by the contents API.
type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// indexFileName is the only file name that carries translation status.
const indexFileName = "index.md"

// Entry is one item of a directory listing.
type Entry struct {
	Name string    `json:"name"`
	Path string    `json:"path"`
	Type EntryType `json:"type"`
	URL  string    `json:"html_url,omitempty"`
}

// FileDescriptor is the contents API response for a single file.
// Content is nil when the API omitted it (e.g. files over the inline size limit).
type FileDescriptor struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Type     EntryType `json:"type"`
	Encoding string    `json:"encoding,omitempty"`
	Content  *string   `json:"content,omitempty"`
	URL      string    `json:"html_url,omitempty"`
}

// Decode returns the file content as text. GitHub wraps base64 content at
// 60 columns; the embedded newlines are ignored by the decoder.
func (f *FileDescriptor) Decode() (string, error) {
	if f.Content == nil {
		return "", fmt.Errorf("%s has no content", f.Path)
	}
	switch strings.ToLower(f.Encoding) {
	case "", "base64":
		raw, err := base64.StdEncoding.DecodeString(*f.Content)
		if err != nil {
			return "", fmt.Errorf("decode base64 content for %s: %w", f.Path, err)
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("unsupported content encoding %q for %s", f.Encoding, f.Path)
	}
}

// FetchResult is what a ContentFetcher returns for one path: either a single
// file descriptor or a directory listing, never both.
type FetchResult struct {
	File    *FileDescriptor
	Entries []Entry
}

// IsDir reports whether the result is a directory listing.
func (r *FetchResult) IsDir() bool {
	return r.File == nil
}

// Node is one element of the status tree served to clients.
// Children is always non-nil so it serialises as [] for files.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	URL      string  `json:"url"`
	Status   Status  `json:"status"`
	IsDir    bool    `json:"isDir"`
	Children []*Node `json:"children"`
}

func isIndexFile(name string) bool {
	return strings.EqualFold(name, indexFileName)
}
