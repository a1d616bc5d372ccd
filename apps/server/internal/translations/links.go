package translations

import (
	"fmt"
	"strings"
)

// DefaultWebURL is the browse host used when an entry carries no html_url.
const DefaultWebURL = "https://github.com"

// Links synthesises browse URLs for entries the API returned without one.
type Links struct {
	WebURL string
	Owner  string
	Repo   string
	Ref    string
}

// File returns the blob URL for a file path.
func (l Links) File(path string) string {
	return l.url("blob", path)
}

// Dir returns the tree URL for a directory path.
func (l Links) Dir(path string) string {
	return l.url("tree", path)
}

// Repository returns the repository home page.
func (l Links) Repository() string {
	return fmt.Sprintf("%s/%s/%s", l.base(), l.Owner, l.Repo)
}

func (l Links) url(kind, path string) string {
	ref := l.Ref
	if ref == "" {
		ref = "master"
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s/%s", l.base(), l.Owner, l.Repo, kind, ref, strings.TrimPrefix(path, "/"))
}

func (l Links) base() string {
	if l.WebURL == "" {
		return DefaultWebURL
	}
	return strings.TrimSuffix(l.WebURL, "/")
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
