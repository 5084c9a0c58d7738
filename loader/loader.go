package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"tech-blog/config"
	"tech-blog/httpclient"
	"tech-blog/internal/logger"
	"tech-blog/models"
	"tech-blog/parser"
)

const (
	DefaultExtension    = ".mdx"
	DefaultFetchTimeout = 5 * time.Second
)

// Loader turns a fixed manifest of source addresses into posts.
type Loader struct {
	fetcher      Fetcher
	manifest     []string
	extension    string
	categories   map[string]string
	fetchTimeout time.Duration
}

type Option func(*Loader)

func WithExtension(ext string) Option {
	return func(l *Loader) { l.extension = ext }
}

func WithCategories(categories map[string]string) Option {
	return func(l *Loader) { l.categories = categories }
}

// WithFetchTimeout bounds a single source fetch. 0 이하이면 제한하지 않는다.
func WithFetchTimeout(d time.Duration) Option {
	return func(l *Loader) { l.fetchTimeout = d }
}

func New(fetcher Fetcher, manifest []string, opts ...Option) (*Loader, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	l := &Loader{
		fetcher:      fetcher,
		manifest:     append([]string(nil), manifest...),
		extension:    DefaultExtension,
		categories:   config.DefaultCategories,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// NewFromConfig picks the HTTP fetcher when BaseURL is set and the
// filesystem fetcher otherwise.
func NewFromConfig(cfg config.ContentConfig) (*Loader, error) {
	var fetcher Fetcher
	if cfg.BaseURL != "" {
		client := httpclient.NewBaseClientWithClient(
			httpclient.New(httpclient.Config{Timeout: cfg.FetchTimeout}),
			cfg.BaseURL,
		)
		fetcher = NewHTTPFetcher(client)
	} else {
		if cfg.Root == "" {
			return nil, errors.New("loader: content root or base url required")
		}
		fetcher = NewFSFetcher(os.DirFS(cfg.Root))
	}

	return New(fetcher, cfg.Manifest,
		WithExtension(cfg.Extension),
		WithCategories(cfg.Categories),
		WithFetchTimeout(cfg.FetchTimeout),
	)
}

func (l *Loader) Manifest() []string {
	return append([]string(nil), l.manifest...)
}

// LoadAll fetches and parses every manifest source in order.
//
// A source that fails to fetch, fails to parse, is unpublished or repeats an
// earlier slug is logged and skipped; the remaining posts are still returned.
// The only error is ctx's own, when it is done before the batch finishes.
// Posts are ordered by publish date, newest first, keeping manifest order on ties.
func (l *Loader) LoadAll(ctx context.Context) ([]models.Post, error) {
	start := time.Now()
	posts := make([]models.Post, 0, len(l.manifest))
	seen := make(map[string]string, len(l.manifest))
	skipped := 0

	for _, address := range l.manifest {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		post, err := l.Load(ctx, address)
		if err == nil {
			if first, dup := seen[post.Slug]; dup {
				err = fmt.Errorf("%w: %q already loaded from %s", ErrDuplicateSlug, post.Slug, first)
			}
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			skipped++
			logSkip(address, err)
			continue
		}

		seen[post.Slug] = address
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedTime().After(posts[j].PublishedTime())
	})

	logger.InfoWithFields("content loaded", logger.Fields{
		"sources":  len(l.manifest),
		"loaded":   len(posts),
		"skipped":  skipped,
		"duration": time.Since(start).String(),
	})
	return posts, nil
}

// Load fetches and parses a single source.
func (l *Loader) Load(ctx context.Context, address string) (models.Post, error) {
	raw, err := l.fetch(ctx, address)
	if err != nil {
		return models.Post{}, &SourceFetchError{Address: address, Err: err}
	}

	doc, err := parser.ParseDocument(string(raw))
	if err != nil {
		return models.Post{}, &SourceParseError{Address: address, Err: err}
	}
	if !doc.Metadata.IsPublished {
		return models.Post{}, ErrUnpublished
	}

	relPath := RelativePath(address, l.extension)
	category, slug := ParsePostPath(relPath, l.categories)

	meta := doc.Metadata
	meta.StatsID = StatsID(category, slug)
	// front matter 에 category 가 있으면 그 값을 우선한다.
	if meta.Category == "" {
		meta.Category = category
	}

	return models.Post{
		Slug:         slug,
		CategoryPath: relPath,
		Metadata:     meta,
		Content:      doc.Body,
	}, nil
}

type fetchResult struct {
	data []byte
	err  error
}

// fetch 는 fetcher 가 ctx 를 무시하더라도 fetchTimeout 이후에는 반환한다.
func (l *Loader) fetch(ctx context.Context, address string) ([]byte, error) {
	if l.fetchTimeout <= 0 {
		return l.fetcher.Fetch(ctx, address)
	}

	ctx, cancel := context.WithTimeout(ctx, l.fetchTimeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		data, err := l.fetcher.Fetch(ctx, address)
		done <- fetchResult{data: data, err: err}
	}()

	select {
	case r := <-done:
		return r.data, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch timed out after %s: %w", l.fetchTimeout, ctx.Err())
	}
}

func logSkip(address string, err error) {
	fields := logger.Fields{
		"address": address,
		"error":   err.Error(),
	}

	var fetchErr *SourceFetchError
	var parseErr *SourceParseError
	switch {
	case errors.As(err, &fetchErr):
		logger.WarnWithFields("skip source: fetch failed", fields)
	case errors.As(err, &parseErr):
		logger.WarnWithFields("skip source: parse failed", fields)
	default:
		logger.InfoWithFields("skip source", fields)
	}
}
