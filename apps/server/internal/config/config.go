// Package config builds the process configuration once at start-up.
//
// Values come from an optional YAML file named by CONFIG_FILE, then from
// environment variables, which win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tilsley/docstatus/apps/server/internal/platform/github"
	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

// Detector kinds accepted by Walk.Detector.
const (
	DetectorMarker      = "marker"
	DetectorFrontMatter = "frontmatter"
)

// Config is the complete process configuration.
type Config struct {
	Port        string       `yaml:"port"`
	OTelEnabled bool         `yaml:"otelEnabled"`
	GitHub      GitHubConfig `yaml:"github"`
	Repo        RepoConfig   `yaml:"repo"`
	Walk        WalkConfig   `yaml:"walk"`
	Cache       CacheConfig  `yaml:"cache"`
}

// GitHubConfig holds API endpoints and credentials.
type GitHubConfig struct {
	Token          string `yaml:"token"`
	AppID          int64  `yaml:"appId"`
	InstallationID int64  `yaml:"installationId"`
	PrivateKeyPath string `yaml:"privateKeyPath"`
	APIURL         string `yaml:"apiUrl"`
	WebURL         string `yaml:"webUrl"`
}

// RepoConfig names the documentation repository.
type RepoConfig struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
	Ref   string `yaml:"ref"`
	Root  string `yaml:"root"`
}

// WalkConfig tunes the tree walk.
type WalkConfig struct {
	Exclude          []string      `yaml:"exclude"`
	Markers          []string      `yaml:"markers"`
	Detector         string        `yaml:"detector"`
	FrontMatterField string        `yaml:"frontMatterField"`
	Locale           string        `yaml:"locale"`
	IncludeRootIndex bool          `yaml:"includeRootIndex"`
	Concurrency      int           `yaml:"concurrency"`
	FetchTimeout     time.Duration `yaml:"fetchTimeout"`
	MaxRPS           float64       `yaml:"maxRps"`
}

// CacheConfig controls HTTP cache headers and the optional Redis snapshot.
type CacheConfig struct {
	RedisAddr            string        `yaml:"redisAddr"`
	TTL                  time.Duration `yaml:"ttl"`
	StaleWhileRevalidate time.Duration `yaml:"staleWhileRevalidate"`
	ErrorTTL             time.Duration `yaml:"errorTtl"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port: "8080",
		Repo: RepoConfig{
			Owner: "krfoss",
			Name:  "kali-docs",
			Ref:   "master",
		},
		Walk: WalkConfig{
			Exclude:          slices.Clone(translations.DefaultExclusions),
			Markers:          []string{translations.DefaultMarker},
			Detector:         DetectorMarker,
			FrontMatterField: "translated",
			Locale:           "ko",
			Concurrency:      translations.DefaultConcurrency,
			FetchTimeout:     15 * time.Second,
		},
		Cache: CacheConfig{
			TTL:                  10 * time.Minute,
			StaleWhileRevalidate: time.Hour,
			ErrorTTL:             time.Minute,
		},
	}
}

// Load reads CONFIG_FILE (if set) and the environment, then validates.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// mergeEnv overlays every variable that is set. getenv is os.Getenv outside tests.
func (c *Config) mergeEnv(getenv func(string) string) error {
	e := envReader{getenv: getenv}

	e.str("PORT", &c.Port)
	e.boolean("OTEL_ENABLED", &c.OTelEnabled)

	e.str("GITHUB_API_KEY", &c.GitHub.Token)
	e.str("GITHUB_TOKEN", &c.GitHub.Token)
	e.int64("GITHUB_APP_ID", &c.GitHub.AppID)
	e.int64("GITHUB_APP_INSTALLATION_ID", &c.GitHub.InstallationID)
	e.str("GITHUB_APP_PRIVATE_KEY_PATH", &c.GitHub.PrivateKeyPath)
	e.str("GITHUB_API_URL", &c.GitHub.APIURL)
	e.str("GITHUB_WEB_URL", &c.GitHub.WebURL)

	e.str("REPO_OWNER", &c.Repo.Owner)
	e.str("REPO_NAME", &c.Repo.Name)
	e.str("REPO_REF", &c.Repo.Ref)
	e.str("ROOT_PATH", &c.Repo.Root)

	e.list("EXCLUDE", &c.Walk.Exclude)
	e.list("MARKERS", &c.Walk.Markers)
	e.str("DETECTOR", &c.Walk.Detector)
	e.str("FRONTMATTER_FIELD", &c.Walk.FrontMatterField)
	e.str("LOCALE", &c.Walk.Locale)
	e.boolean("INCLUDE_ROOT_INDEX", &c.Walk.IncludeRootIndex)
	e.integer("FETCH_CONCURRENCY", &c.Walk.Concurrency)
	e.duration("FETCH_TIMEOUT", &c.Walk.FetchTimeout)
	e.float("FETCH_MAX_RPS", &c.Walk.MaxRPS)

	e.str("REDIS_ADDR", &c.Cache.RedisAddr)
	e.duration("CACHE_TTL", &c.Cache.TTL)
	e.duration("CACHE_SWR", &c.Cache.StaleWhileRevalidate)
	e.duration("CACHE_ERROR_TTL", &c.Cache.ErrorTTL)

	return errors.Join(e.errs...)
}

// Validate checks values that would make the walk meaningless. A missing
// credential is not checked here; the service reports it per request.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(field, reason string) {
		errs = append(errs, translations.ConfigurationError{Field: field, Reason: reason})
	}
	if c.Repo.Owner == "" {
		invalid("REPO_OWNER", "must not be empty")
	}
	if c.Repo.Name == "" {
		invalid("REPO_NAME", "must not be empty")
	}
	if c.Walk.Concurrency <= 0 {
		invalid("FETCH_CONCURRENCY", "must be positive")
	}
	if c.Walk.FetchTimeout < 0 {
		invalid("FETCH_TIMEOUT", "must not be negative")
	}
	if c.Walk.MaxRPS < 0 {
		invalid("FETCH_MAX_RPS", "must not be negative")
	}
	switch c.Walk.Detector {
	case DetectorMarker:
	case DetectorFrontMatter:
		if c.Walk.FrontMatterField == "" {
			invalid("FRONTMATTER_FIELD", "must be set for the frontmatter detector")
		}
	default:
		invalid("DETECTOR", fmt.Sprintf("must be %q or %q, got %q", DetectorMarker, DetectorFrontMatter, c.Walk.Detector))
	}
	if c.GitHub.AppID != 0 && (c.GitHub.InstallationID == 0 || c.GitHub.PrivateKeyPath == "") {
		invalid("GITHUB_APP_ID", "requires GITHUB_APP_INSTALLATION_ID and GITHUB_APP_PRIVATE_KEY_PATH")
	}
	return errors.Join(errs...)
}

// Credentials returns the GitHub credential settings.
func (c *Config) Credentials() github.Credentials {
	return github.Credentials{
		Token:          c.GitHub.Token,
		AppID:          c.GitHub.AppID,
		InstallationID: c.GitHub.InstallationID,
		PrivateKeyPath: c.GitHub.PrivateKeyPath,
	}
}

// Links returns the browse-URL builder for the configured repository.
func (c *Config) Links() translations.Links {
	return translations.Links{
		WebURL: c.GitHub.WebURL,
		Owner:  c.Repo.Owner,
		Repo:   c.Repo.Name,
		Ref:    c.Repo.Ref,
	}
}

// Detector returns the translation detector selected by Walk.Detector.
func (c *Config) Detector() translations.Detector {
	if c.Walk.Detector == DetectorFrontMatter {
		return translations.FrontMatterDetector{Field: c.Walk.FrontMatterField}
	}
	return translations.NewMarkerDetector(c.Walk.Markers...)
}

// Aggregator returns the aggregator settings derived from this config.
func (c *Config) Aggregator() translations.AggregatorConfig {
	return translations.AggregatorConfig{
		Detector:         c.Detector(),
		Filter:           translations.NewFilter(c.Walk.Exclude),
		Ordering:         translations.NewOrdering(c.Walk.Locale),
		Links:            c.Links(),
		Root:             c.Repo.Root,
		IncludeRootIndex: c.Walk.IncludeRootIndex,
		Concurrency:      c.Walk.Concurrency,
		FetchTimeout:     c.Walk.FetchTimeout,
		MaxRPS:           c.Walk.MaxRPS,
	}
}

// envReader overlays set environment variables onto config fields and
// collects parse failures.
type envReader struct {
	getenv func(string) string
	errs   []error
}

func (e *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(e.getenv(key))
	return v, v != ""
}

func (e *envReader) fail(key, v, kind string) {
	e.errs = append(e.errs, translations.ConfigurationError{
		Field:  key,
		Reason: fmt.Sprintf("must be %s, got %q", kind, v),
	})
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) list(key string, dst *[]string) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func (e *envReader) boolean(key string, dst *bool) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, "a boolean")
		return
	}
	*dst = b
}

func (e *envReader) integer(key string, dst *int) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, "an integer")
		return
	}
	*dst = n
}

func (e *envReader) int64(key string, dst *int64) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(key, v, "an integer")
		return
	}
	*dst = n
}

func (e *envReader) float(key string, dst *float64) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, "a number")
		return
	}
	*dst = f
}

func (e *envReader) duration(key string, dst *time.Duration) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, "a duration such as 15s")
		return
	}
	*dst = d
}
