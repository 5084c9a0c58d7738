package repositories

import (
	"context"
	"sync/atomic"

	"tech-blog/cache"
	"tech-blog/models"
)

// PostLoader builds the full corpus. *loader.Loader implements it.
type PostLoader interface {
	LoadAll(ctx context.Context) ([]models.Post, error)
}

// PostRepository owns the corpus for one cache key.
//
// Readers get an immutable *PostIndex; a rebuild swaps the pointer, so a
// reader holding the old index keeps a consistent view.
type PostRepository struct {
	loader  PostLoader
	cache   *cache.PostCache
	key     string
	current atomic.Pointer[snapshot]
}

type snapshot struct {
	index  *PostIndex
	source []models.Post
}

func NewPostRepository(l PostLoader, c *cache.PostCache, key string) *PostRepository {
	r := &PostRepository{loader: l, cache: c, key: key}
	r.current.Store(&snapshot{index: NewPostIndex(nil)})
	return r
}

// Index returns the index for the cached corpus, loading it when the cache
// entry is missing or stale.
func (r *PostRepository) Index(ctx context.Context) (*PostIndex, error) {
	posts, err := r.cache.GetOrLoad(ctx, r.key, r.loader.LoadAll)
	if err != nil {
		return nil, err
	}
	return r.swap(posts), nil
}

// Reload forces a rebuild regardless of cache freshness.
func (r *PostRepository) Reload(ctx context.Context) (*PostIndex, error) {
	posts, err := r.cache.Refresh(ctx, r.key, r.loader.LoadAll)
	if err != nil {
		return nil, err
	}
	return r.swap(posts), nil
}

// Current returns the last built index without touching the cache.
// 아직 로드된 적이 없으면 빈 인덱스다.
func (r *PostRepository) Current() *PostIndex {
	return r.current.Load().index
}

func (r *PostRepository) swap(posts []models.Post) *PostIndex {
	cur := r.current.Load()
	if sameSlice(cur.source, posts) {
		return cur.index
	}

	next := &snapshot{index: NewPostIndex(posts), source: posts}
	// 동시에 다른 고루틴이 같은 목록으로 교체했다면 그 인덱스를 사용한다.
	if r.current.CompareAndSwap(cur, next) {
		return next.index
	}
	if latest := r.current.Load(); sameSlice(latest.source, posts) {
		return latest.index
	}
	return next.index
}

func sameSlice(a, b []models.Post) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	return &a[0] == &b[0]
}
