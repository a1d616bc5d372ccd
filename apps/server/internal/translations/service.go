package translations

import (
	"context"
	"fmt"
	"log/slog"
)

// Walker produces a full status report. *Aggregator is the production implementation.
type Walker interface {
	Walk(ctx context.Context) ([]*Node, error)
}

// Service is the use-case entry point for status reports. It refuses to run
// without a credential and consults the optional ReportCache before walking.
type Service struct {
	walker     Walker
	cache      ReportCache
	credential bool
	log        *slog.Logger
}

// NewService creates a Service. hasCredential reports whether the fetcher was
// built with a token or app credential; cache may be nil.
func NewService(walker Walker, cache ReportCache, hasCredential bool, log *slog.Logger) *Service {
	return &Service{walker: walker, cache: cache, credential: hasCredential, log: log}
}

// Report returns the top-level status nodes. When a cache is set and holds a
// report, that report is returned as is and no walk runs; it is as fresh as
// the cache TTL allows. Otherwise Report walks the repository and stores the
// result. Failed or cancelled walks are never stored.
func (s *Service) Report(ctx context.Context) ([]*Node, error) {
	if !s.credential {
		return nil, ConfigurationError{Field: "GITHUB_TOKEN", Reason: "is not set"}
	}

	if s.cache != nil {
		nodes, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn("report cache read failed", "error", err)
		} else if nodes != nil {
			return nodes, nil
		}
	}

	nodes, err := s.walker.Walk(ctx)
	if err != nil {
		return nil, fmt.Errorf("build status tree: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, nodes); err != nil {
			s.log.Warn("report cache write failed", "error", err)
		}
	}
	return nodes, nil
}
