// Package adapters implements translations.ContentFetcher against real and
// in-memory content hosts. Wire GitHubFetcher with an authenticated client
// from apps/server/internal/platform/github.
package adapters

import (
	"context"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

// Compile-time check: *GitHubFetcher implements translations.ContentFetcher.
var _ translations.ContentFetcher = (*GitHubFetcher)(nil)

// GitHubFetcher reads repository paths through the GitHub contents API.
type GitHubFetcher struct {
	gh    *gogithub.Client
	owner string
	repo  string
	ref   string
}

// NewGitHubFetcher creates a fetcher for owner/repo. An empty ref uses the
// repository's default branch.
func NewGitHubFetcher(gh *gogithub.Client, owner, repo, ref string) *GitHubFetcher {
	return &GitHubFetcher{gh: gh, owner: owner, repo: repo, ref: ref}
}

// Fetch returns the file descriptor or directory listing at path. File
// content is left base64-encoded, exactly as the API returned it.
func (f *GitHubFetcher) Fetch(ctx context.Context, path string) (*translations.FetchResult, error) {
	var opts *gogithub.RepositoryContentGetOptions
	if f.ref != "" {
		opts = &gogithub.RepositoryContentGetOptions{Ref: f.ref}
	}

	file, dir, resp, err := f.gh.Repositories.GetContents(ctx, f.owner, f.repo, path, opts)
	if err != nil {
		return nil, classifyError(path, resp, err)
	}

	if file != nil {
		return &translations.FetchResult{File: &translations.FileDescriptor{
			Name:     file.GetName(),
			Path:     file.GetPath(),
			Type:     translations.EntryType(file.GetType()),
			Encoding: file.GetEncoding(),
			Content:  file.Content,
			URL:      file.GetHTMLURL(),
		}}, nil
	}

	entries := make([]translations.Entry, 0, len(dir))
	for _, c := range dir {
		if c == nil {
			continue
		}
		entries = append(entries, translations.Entry{
			Name: c.GetName(),
			Path: c.GetPath(),
			Type: translations.EntryType(c.GetType()),
			URL:  c.GetHTMLURL(),
		})
	}
	return &translations.FetchResult{Entries: entries}, nil
}

// classifyError maps a go-github failure onto the fetcher error taxonomy.
// go-github returns the response alongside the error whenever the server
// answered, including its synthetic 403 for a known exhausted rate limit.
// A 2xx answer with an error means the body matched neither shape.
func classifyError(path string, resp *gogithub.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return translations.FetchError{Path: path, Err: err}
	}
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return translations.ShapeError{Path: path, Expected: "file or directory listing"}
	}
	return translations.FetchError{Path: path, StatusCode: code, Err: err}
}
