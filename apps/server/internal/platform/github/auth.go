// Package github provides factory functions for creating authenticated GitHub
// API clients. Callers pass the returned *github.Client to
// translations/adapters.NewGitHubFetcher.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gogithub "github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"
)

const defaultAPIURL = "https://api.github.com"

// Credentials selects how the client authenticates. A token wins over app
// credentials when both are set.
type Credentials struct {
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// Present reports whether any usable credential is configured.
func (c Credentials) Present() bool {
	return c.Token != "" || (c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyPath != "")
}

// NewClient builds a client from creds against baseURL ("" for api.github.com).
// With no credential it returns an unauthenticated client.
func NewClient(creds Credentials, baseURL string) (*gogithub.Client, error) {
	if creds.Token == "" && creds.AppID != 0 {
		return NewAppClient(creds.AppID, creds.InstallationID, creds.PrivateKeyPath, baseURL)
	}
	return NewTokenClient(creds.Token, baseURL), nil
}

// NewTokenClient creates a *github.Client that sends token as a bearer
// credential. Pass baseURL="" to use the real GitHub API, or a custom URL
// (e.g. "http://localhost:9090") for the mock server.
func NewTokenClient(token, baseURL string) *gogithub.Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	c := gogithub.NewClient(httpClient)
	applyBaseURL(c, baseURL)
	return c
}

// NewAppClient creates a *github.Client authenticated as a GitHub App installation.
// privateKeyPath is the path to the app's PEM private key.
func NewAppClient(appID, installationID int64, privateKeyPath, baseURL string) (*gogithub.Client, error) {
	base := baseURL
	if base == "" {
		base = defaultAPIURL
	}

	tr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("github app auth: %w", err)
	}
	tr.BaseURL = strings.TrimSuffix(base, "/")

	c := gogithub.NewClient(&http.Client{Transport: tr})
	applyBaseURL(c, baseURL)
	return c, nil
}

func applyBaseURL(c *gogithub.Client, baseURL string) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" || baseURL == defaultAPIURL {
		return
	}
	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return
	}
	c.BaseURL = u
}
