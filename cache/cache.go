package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tech-blog/internal/logger"
	"tech-blog/models"
)

const DefaultFreshnessWindow = 5 * time.Minute

// LoadFunc builds the full post list for a cache key.
type LoadFunc func(ctx context.Context) ([]models.Post, error)

// Entry is one memoized post list.
// An entry is fresh while now - Timestamp < freshness window.
type Entry struct {
	Key       string
	Posts     []models.Post
	Timestamp time.Time
}

// CacheRebuildError is returned when the load function fails.
// A stale entry is never returned in its place.
type CacheRebuildError struct {
	Key string
	Err error
}

func (e *CacheRebuildError) Error() string {
	return fmt.Sprintf("rebuild cache %q: %v", e.Key, e.Err)
}

func (e *CacheRebuildError) Unwrap() error { return e.Err }

// PostCache 는 키별 포스트 목록을 freshness window 동안 메모이즈한다.
// 엔트리는 재빌드 시 통째로 교체되며 삭제되지 않는다.
// 같은 키에 대한 동시 재빌드는 singleflight 로 한 번만 실행된다.
type PostCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	window  time.Duration
	now     func() time.Time
	group   singleflight.Group
}

type Option func(*PostCache)

// WithClock 은 테스트에서 시간을 제어하기 위해 사용한다.
func WithClock(now func() time.Time) Option {
	return func(c *PostCache) { c.now = now }
}

func New(window time.Duration, opts ...Option) *PostCache {
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	c := &PostCache{
		entries: make(map[string]*Entry),
		window:  window,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entry for key only if it is still fresh.
func (c *PostCache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.fresh(e) {
		return Entry{}, false
	}
	return *e, true
}

// GetOrLoad returns the fresh entry for key, or calls load and stores its
// result under a new timestamp.
func (c *PostCache) GetOrLoad(ctx context.Context, key string, load LoadFunc) ([]models.Post, error) {
	if e, ok := c.Get(key); ok {
		return e.Posts, nil
	}

	v, err, _ := c.group.Do("load:"+key, func() (any, error) {
		// 대기 중에 다른 호출이 이미 재빌드했을 수 있다.
		if e, ok := c.Get(key); ok {
			return e.Posts, nil
		}
		return c.rebuild(ctx, key, load)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Post), nil
}

// Refresh rebuilds the entry for key regardless of its freshness.
func (c *PostCache) Refresh(ctx context.Context, key string, load LoadFunc) ([]models.Post, error) {
	v, err, _ := c.group.Do("refresh:"+key, func() (any, error) {
		return c.rebuild(ctx, key, load)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Post), nil
}

func (c *PostCache) rebuild(ctx context.Context, key string, load LoadFunc) ([]models.Post, error) {
	start := c.now()
	posts, err := load(ctx)
	if err != nil {
		logger.ErrorWithFields("cache rebuild failed", logger.Fields{
			"cache_key": key,
			"error":     err.Error(),
		})
		return nil, &CacheRebuildError{Key: key, Err: err}
	}

	e := &Entry{Key: key, Posts: posts, Timestamp: c.now()}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()

	logger.DebugWithFields("cache rebuilt", logger.Fields{
		"cache_key": key,
		"posts":     len(posts),
		"duration":  c.now().Sub(start).String(),
	})
	return posts, nil
}

func (c *PostCache) fresh(e *Entry) bool {
	return c.now().Sub(e.Timestamp) < c.window
}
