package repositories_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-blog/cache"
	"tech-blog/models"
	"tech-blog/repositories"
)

type stubLoader struct {
	calls int32
	posts []models.Post
	err   error
}

func (s *stubLoader) LoadAll(ctx context.Context) ([]models.Post, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Post(nil), s.posts...), nil
}

func TestPostRepository_IndexIsCached(t *testing.T) {
	l := &stubLoader{posts: []models.Post{post("a", "React", "2024-01-10", 0)}}
	repo := repositories.NewPostRepository(l, cache.New(time.Minute), "default")

	assert.Equal(t, 0, repo.Current().Len())

	first, err := repo.Index(context.Background())
	require.NoError(t, err)
	second, err := repo.Index(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, repo.Current())
	assert.Equal(t, int32(1), atomic.LoadInt32(&l.calls))
}

func TestPostRepository_ReloadSwapsIndex(t *testing.T) {
	l := &stubLoader{posts: []models.Post{post("a", "React", "2024-01-10", 0)}}
	repo := repositories.NewPostRepository(l, cache.New(time.Minute), "default")

	old, err := repo.Index(context.Background())
	require.NoError(t, err)

	l.posts = append(l.posts, post("b", "CSS", "2024-01-11", 0))
	next, err := repo.Reload(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, old, next)
	assert.Equal(t, 1, old.Len(), "old snapshot is not mutated")
	assert.Equal(t, 2, next.Len())
	assert.Same(t, next, repo.Current())
}

func TestPostRepository_LoadFailure(t *testing.T) {
	l := &stubLoader{err: errors.New("boom")}
	repo := repositories.NewPostRepository(l, cache.New(time.Minute), "default")

	idx, err := repo.Index(context.Background())
	assert.Nil(t, idx)
	var rebuildErr *cache.CacheRebuildError
	assert.ErrorAs(t, err, &rebuildErr)
	assert.Equal(t, 0, repo.Current().Len())
}

func TestPostRepository_ConcurrentReadersDuringReload(t *testing.T) {
	l := &stubLoader{posts: []models.Post{post("a", "React", "2024-01-10", 0)}}
	repo := repositories.NewPostRepository(l, cache.New(time.Minute), "default")
	_, err := repo.Index(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				idx := repo.Current()
				n := idx.Len()
				assert.Len(t, idx.All(), n)
			}
		}()
	}
	for i := 0; i < 5; i++ {
		_, err := repo.Reload(context.Background())
		require.NoError(t, err)
	}
	wg.Wait()
}
