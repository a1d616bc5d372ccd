package translations

import "context"

// ContentFetcher retrieves one repository path from a content host.
// Implementations live in the adapters package (GitHub, in-memory).
// Failures are reported as FetchError or ShapeError; nothing is retried.
type ContentFetcher interface {
	Fetch(ctx context.Context, path string) (*FetchResult, error)
}

// Detector decides whether the decoded text of an index.md is translated.
type Detector interface {
	IsTranslated(text string) bool
}

// ReportCache stores the most recent report outside the aggregator.
// A nil slice from Get means a miss.
type ReportCache interface {
	Get(ctx context.Context) ([]*Node, error)
	Set(ctx context.Context, nodes []*Node) error
}
