package translations

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const instrumentationName = "github.com/tilsley/docstatus/translations"

// DefaultConcurrency is the number of fetches allowed in flight per walk.
const DefaultConcurrency = 8

// AggregatorConfig holds everything the walk needs besides the fetcher.
type AggregatorConfig struct {
	Detector Detector
	Filter   Filter
	Ordering Ordering
	Links    Links

	// Root is the repository path the walk starts from; "" is the repository root.
	Root string
	// IncludeRootIndex also visits an index.md sitting directly in Root.
	IncludeRootIndex bool

	// Concurrency caps in-flight fetches across one whole walk.
	Concurrency int
	// FetchTimeout bounds each individual fetch; zero disables the deadline.
	FetchTimeout time.Duration
	// MaxRPS caps fetch starts per second across all walks; zero disables it.
	MaxRPS float64
}

// Aggregator builds the translation status tree. Each call to Walk fetches
// the whole tree again; nothing is kept between walks.
type Aggregator struct {
	fetcher ContentFetcher
	cfg     AggregatorConfig
	limiter *rate.Limiter
	log     *slog.Logger

	tracer  trace.Tracer
	fetches metric.Int64Counter
}

// NewAggregator creates an Aggregator.
func NewAggregator(fetcher ContentFetcher, cfg AggregatorConfig, log *slog.Logger) *Aggregator {
	if cfg.Detector == nil {
		cfg.Detector = NewMarkerDetector()
	}
	if cfg.Filter.names == nil {
		cfg.Filter = NewFilter(DefaultExclusions)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	var limiter *rate.Limiter
	if cfg.MaxRPS > 0 {
		burst := int(cfg.MaxRPS)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.MaxRPS), burst)
	}

	fetches, err := otel.Meter(instrumentationName).Int64Counter("docstatus.fetches",
		metric.WithDescription("Content fetches issued during tree walks, by outcome"),
	)
	if err != nil {
		log.Warn("fetch counter unavailable", "error", err)
		fetches = noop.Int64Counter{}
	}

	return &Aggregator{
		fetcher: fetcher,
		cfg:     cfg,
		limiter: limiter,
		log:     log,
		tracer:  otel.Tracer(instrumentationName),
		fetches: fetches,
	}
}

// Walk lists the root and returns one node per top-level directory, sorted by
// name. A failure to list the root, or cancellation of ctx during the walk,
// is returned as an error; any other failure below the root degrades to a
// red node.
func (a *Aggregator) Walk(ctx context.Context) ([]*Node, error) {
	ctx, span := a.tracer.Start(ctx, "translations.Walk",
		trace.WithAttributes(attribute.String("docstatus.root", a.cfg.Root)))
	defer span.End()

	w := &walk{Aggregator: a, sem: semaphore.NewWeighted(int64(a.cfg.Concurrency))}

	res, err := w.fetch(ctx, a.cfg.Root)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "root listing failed")
		return nil, fmt.Errorf("list root: %w", err)
	}
	if !res.IsDir() {
		err := ShapeError{Path: a.cfg.Root, Expected: "directory listing"}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	top := make([]Entry, 0, len(res.Entries))
	for _, e := range res.Entries {
		switch {
		case e.Type == EntryDir:
			top = append(top, e)
		case e.Type == EntryFile && a.cfg.IncludeRootIndex && isIndexFile(e.Name):
			top = append(top, e)
		}
	}

	nodes := w.visitAll(ctx, top)
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "walk cancelled")
		return nil, fmt.Errorf("walk %q: %w", a.cfg.Root, err)
	}
	a.cfg.Ordering.SortByName(nodes)
	span.SetAttributes(attribute.Int("docstatus.top_level", len(nodes)))
	return nodes, nil
}

// walk is the state shared by one Walk invocation.
type walk struct {
	*Aggregator
	sem *semaphore.Weighted
}

// visitAll visits every entry concurrently and returns the non-nil results
// in entry order.
func (w *walk) visitAll(ctx context.Context, entries []Entry) []*Node {
	results := make([]*Node, len(entries))
	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Go(func() {
			results[i] = w.visit(ctx, e)
		})
	}
	wg.Wait()

	out := make([]*Node, 0, len(results))
	for _, n := range results {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// visit returns the node for one entry, or nil when the entry is out of scope.
func (w *walk) visit(ctx context.Context, e Entry) *Node {
	if w.cfg.Filter.Excluded(e.Name) {
		return nil
	}
	switch e.Type {
	case EntryFile:
		if !isIndexFile(e.Name) {
			return nil
		}
		return w.visitFile(ctx, e)
	case EntryDir:
		return w.visitDir(ctx, e)
	default:
		w.log.Debug("skipping entry", "path", e.Path, "type", e.Type)
		return nil
	}
}

func (w *walk) visitFile(ctx context.Context, e Entry) *Node {
	status := StatusRed
	if w.translated(ctx, e.Path) {
		status = StatusGreen
	}
	return &Node{
		Name:     e.Name,
		Path:     e.Path,
		URL:      orDefault(e.URL, w.cfg.Links.File(e.Path)),
		Status:   status,
		IsDir:    false,
		Children: []*Node{},
	}
}

// translated fetches an index.md and runs the detector over its text.
// Every failure is logged and counts as not translated.
func (w *walk) translated(ctx context.Context, path string) bool {
	res, err := w.fetch(ctx, path)
	if err != nil {
		w.log.Warn("could not fetch index file", "path", path, "error", err)
		return false
	}
	if res.IsDir() || res.File.Type != EntryFile || res.File.Content == nil {
		w.log.Warn("index entry is not a file or has no content", "path", path)
		return false
	}
	text, err := res.File.Decode()
	if err != nil {
		w.log.Warn("could not decode index file", "path", path, "error", err)
		return false
	}
	return w.cfg.Detector.IsTranslated(text)
}

func (w *walk) visitDir(ctx context.Context, e Entry) *Node {
	node := &Node{
		Name:     e.Name,
		Path:     e.Path,
		URL:      orDefault(e.URL, w.cfg.Links.Dir(e.Path)),
		Status:   StatusRed,
		IsDir:    true,
		Children: []*Node{},
	}

	res, err := w.fetch(ctx, e.Path)
	if err != nil {
		w.log.Warn("could not list directory", "path", e.Path, "error", err)
		return node
	}

	entries := res.Entries
	if !res.IsDir() {
		w.log.Warn("unexpected directory response",
			"path", e.Path, "error", ShapeError{Path: e.Path, Expected: "directory listing"})
		entries = nil
	}

	children := w.visitAll(ctx, entries)
	w.cfg.Ordering.SortSiblings(children)
	node.Children = children
	node.Status = Rollup(indexStatuses(children))
	return node
}

// fetch passes through the rate limiter and the walk's concurrency gate, then
// calls the fetcher under the per-fetch deadline.
func (w *walk) fetch(ctx context.Context, path string) (*FetchResult, error) {
	ctx, span := w.tracer.Start(ctx, "translations.fetch",
		trace.WithAttributes(attribute.String("docstatus.path", path)))
	defer span.End()

	res, err := w.doFetch(ctx, path)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
	}
	w.fetches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	return res, err
}

func (w *walk) doFetch(ctx context.Context, path string) (*FetchResult, error) {
	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			return nil, FetchError{Path: path, Err: err}
		}
	}
	if err := w.sem.Acquire(ctx, 1); err != nil {
		return nil, FetchError{Path: path, Err: err}
	}
	defer w.sem.Release(1)

	if w.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.FetchTimeout)
		defer cancel()
	}

	res, err := w.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ShapeError{Path: path, Expected: "file or directory listing"}
	}
	return res, nil
}
