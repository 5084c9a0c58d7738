package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-blog/cache"
	"tech-blog/cmd/api/router"
	"tech-blog/dto"
	"tech-blog/loader"
	"tech-blog/repositories"
	"tech-blog/services"
	"tech-blog/trace"
)

var contentFS = fstest.MapFS{
	"javascript/react-hooks-complete-guide.mdx": {Data: []byte(`---
title: React Hooks Complete Guide
excerpt: Learn hooks
publishedAt: 2024-01-15
viewCount: 120
tags: [React, Hooks]
---
useState and useEffect`)},
	"react/nextjs-14-new-features.mdx": {Data: []byte(`---
title: Next.js 14 New Features
publishedAt: 2024-01-10
viewCount: 300
tags: [Next.js, React]
---
Server actions`)},
	"typescript/typescript-generics-guide.mdx": {Data: []byte(`---
title: TypeScript Generics Guide
publishedAt: 2024-01-20
tags: [TypeScript, Generics]
---
Generic types`)},
}

func newTestRouter(t *testing.T, statsPing func(context.Context) error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l, err := loader.New(loader.NewFSFetcher(contentFS), []string{
		"javascript/react-hooks-complete-guide.mdx",
		"react/nextjs-14-new-features.mdx",
		"typescript/typescript-generics-guide.mdx",
	})
	require.NoError(t, err)

	repo := repositories.NewPostRepository(l, cache.New(time.Minute), "default")
	return router.New(router.Dependencies{
		Posts:     services.NewPostService(repo, nil, 0),
		Search:    services.NewSearchService(repo, nil),
		StatsPing: statsPing,
	})
}

func do(t *testing.T, r http.Handler, method, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t, nil), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(trace.HeaderRequestID))
	assert.Equal(t, "0", w.Header().Get(trace.HeaderSpanID))

	down := func(context.Context) error { return errors.New("no reachable servers") }
	w = do(t, newTestRouter(t, down), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(trace.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(trace.HeaderRequestID))
}

func TestListPosts(t *testing.T) {
	r := newTestRouter(t, nil)

	var list dto.PostListDTO
	w := do(t, r, http.MethodGet, "/api/v1/posts", &list)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, "typescript-generics-guide", list.Data[0].Slug, "loader orders newest first")

	w = do(t, r, http.MethodGet, "/api/v1/posts?sort=popular&limit=1", &list)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "nextjs-14-new-features", list.Data[0].Slug)

	w = do(t, r, http.MethodGet, "/api/v1/posts?tag=react&category=javascript", &list)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "react-hooks-complete-guide", list.Data[0].Slug)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/v1/posts?sort=random", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/v1/posts?limit=abc", nil).Code)
}

func TestPopularPosts(t *testing.T) {
	r := newTestRouter(t, nil)

	var posts []dto.PostSummaryDTO
	w := do(t, r, http.MethodGet, "/api/v1/popular?limit=2", &posts)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, posts, 2)
	assert.Equal(t, "nextjs-14-new-features", posts[0].Slug)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/v1/popular?limit=-1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/v1/popular?limit=abc", nil).Code)
}

func TestGetPost(t *testing.T) {
	r := newTestRouter(t, nil)

	var post dto.PostDTO
	w := do(t, r, http.MethodGet, "/api/v1/posts/react-hooks-complete-guide", &post)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "JavaScript", post.Category)
	assert.Equal(t, "javascript-react-hooks-complete-guide", post.StatsID)
	assert.Equal(t, "useState and useEffect", post.Content)

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/v1/posts/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/v1/posts/react-hooks-complete-guide?category=CSS", nil).Code)
}

func TestRelatedFeaturedAndTaxonomy(t *testing.T) {
	r := newTestRouter(t, nil)

	var related []dto.PostSummaryDTO
	w := do(t, r, http.MethodGet, "/api/v1/posts/react-hooks-complete-guide/related?limit=2", &related)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, related, 2)
	assert.Equal(t, "nextjs-14-new-features", related[0].Slug)

	var featured dto.PostDTO
	w = do(t, r, http.MethodGet, "/api/v1/featured", &featured)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "typescript-generics-guide", featured.Slug)

	var categories []dto.NameCountDTO
	w = do(t, r, http.MethodGet, "/api/v1/categories", &categories)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, categories, 3)

	var tags []dto.NameCountDTO
	w = do(t, r, http.MethodGet, "/api/v1/tags", &tags)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, tags)
	assert.Equal(t, dto.NameCountDTO{Name: "React", Count: 2}, tags[0])
}

func TestIncrementViewWithoutStatsStore(t *testing.T) {
	r := newTestRouter(t, nil)

	var stats dto.StatsDTO
	w := do(t, r, http.MethodPost, "/api/v1/posts/nextjs-14-new-features/view", &stats)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(300), stats.ViewCount)
	assert.Equal(t, "react-nextjs-14-new-features", stats.StatsID)
}

func TestSearch(t *testing.T) {
	r := newTestRouter(t, nil)

	var resp dto.SearchResponseDTO
	w := do(t, r, http.MethodGet, "/api/v1/search?q=react", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "results", resp.State)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "react-hooks-complete-guide", resp.Results[0].Post.Slug)
	assert.Equal(t, 24, resp.Results[0].Score)

	w = do(t, r, http.MethodGet, "/api/v1/search?q=react&tags=Next.js", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, resp.Total)

	w = do(t, r, http.MethodGet, "/api/v1/search?q=nonexistent", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no_results", resp.State)

	w = do(t, r, http.MethodGet, "/api/v1/search", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "idle", resp.State)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/v1/search?q=react&from=garbage", nil).Code)
}

func TestReload(t *testing.T) {
	var resp dto.ReloadResponseDTO
	w := do(t, newTestRouter(t, nil), http.MethodPost, "/api/v1/reload", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, resp.Posts)
}
