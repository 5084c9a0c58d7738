package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tech-blog/dto"
	"tech-blog/internal/logger"
	"tech-blog/models"
	"tech-blog/repositories"
)

const (
	SortRecent  = "recent"
	SortPopular = "popular"

	DefaultRelatedLimit = 3
	DefaultPopularLimit = 5
	defaultStatsTimeout = 2 * time.Second
)

var (
	ErrPostNotFound = repositories.ErrPostNotFound
	ErrInvalidInput = errors.New("invalid input")
)

// PostIndexer provides the current corpus index. *repositories.PostRepository implements it.
type PostIndexer interface {
	Index(ctx context.Context) (*repositories.PostIndex, error)
	Reload(ctx context.Context) (*repositories.PostIndex, error)
}

// PostService encapsulates post lookups and DTO mapping.
//
// stats 는 nil 일 수 있다. 통계 저장소가 없거나 실패하면 메타데이터의
// viewCount/likes/comments 값을 그대로 사용한다.
type PostService struct {
	posts        PostIndexer
	stats        StatsStore
	statsTimeout time.Duration
}

func NewPostService(posts PostIndexer, stats StatsStore, statsTimeout time.Duration) *PostService {
	if statsTimeout <= 0 {
		statsTimeout = defaultStatsTimeout
	}
	return &PostService{posts: posts, stats: stats, statsTimeout: statsTimeout}
}

type ListPostsInput struct {
	Category string
	Tag      string
	// Sort is "recent", "popular" or empty for corpus order.
	Sort  string
	Limit int
}

// List returns post summaries filtered by category and tag (both
// case-insensitive exact matches), sorted and truncated to Limit (0 = all).
func (s *PostService) List(ctx context.Context, in ListPostsInput) (*dto.PostListDTO, error) {
	if in.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	idx, err := s.posts.Index(ctx)
	if err != nil {
		return nil, err
	}

	candidates := idx.All()
	if in.Category != "" {
		candidates = idx.ByCategory(in.Category)
	}
	if in.Tag != "" {
		candidates = intersect(candidates, idx.ByTag(in.Tag))
	}

	limit := in.Limit
	if limit == 0 {
		limit = len(candidates)
	}

	sub := repositories.NewPostIndex(candidates)
	var posts []models.Post
	switch normalizeSort(in.Sort) {
	case "":
		posts = candidates
		if limit < len(posts) {
			posts = posts[:limit]
		}
	case SortRecent:
		posts = sub.Recent(limit)
	case SortPopular:
		posts = sub.Popular(limit)
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, in.Sort)
	}

	return &dto.PostListDTO{
		Data:  dto.NewPostSummaryDTOs(posts),
		Total: len(candidates),
	}, nil
}

// GetBySlug returns a full post. When category is set the post must belong to it.
func (s *PostService) GetBySlug(ctx context.Context, slug, category string) (*dto.PostDTO, error) {
	idx, err := s.posts.Index(ctx)
	if err != nil {
		return nil, err
	}

	var (
		p  models.Post
		ok bool
	)
	if category != "" {
		p, ok = idx.BySlugAndCategory(slug, category)
	} else {
		p, ok = idx.ByID(slug)
	}
	if !ok {
		return nil, ErrPostNotFound
	}

	d := dto.NewPostDTO(p)
	s.mergeStats(ctx, &d.PostSummaryDTO)
	return &d, nil
}

// Featured returns the first post of the corpus.
func (s *PostService) Featured(ctx context.Context) (*dto.PostDTO, error) {
	idx, err := s.posts.Index(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := idx.Featured()
	if !ok {
		return nil, ErrPostNotFound
	}

	d := dto.NewPostDTO(p)
	s.mergeStats(ctx, &d.PostSummaryDTO)
	return &d, nil
}

// Related returns up to limit posts ranked by shared category and tags.
func (s *PostService) Related(ctx context.Context, slug string, limit int) ([]dto.PostSummaryDTO, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if limit == 0 {
		limit = DefaultRelatedLimit
	}
	idx, err := s.posts.Index(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := idx.ByID(slug)
	if !ok {
		return nil, ErrPostNotFound
	}
	return dto.NewPostSummaryDTOs(idx.RelatedTo(p, limit)), nil
}

func (s *PostService) Categories(ctx context.Context) ([]dto.NameCountDTO, error) {
	idx, err := s.posts.Index(ctx)
	if err != nil {
		return nil, err
	}
	return toNameCounts(idx.CategoryCounts()), nil
}

func (s *PostService) Tags(ctx context.Context) ([]dto.NameCountDTO, error) {
	idx, err := s.posts.Index(ctx)
	if err != nil {
		return nil, err
	}
	return toNameCounts(idx.TagCounts()), nil
}

// IncrementViewCount bumps the stored view counter of a post.
// 통계 저장소가 없거나 실패하면 증가 없이 메타데이터 카운터를 반환한다.
func (s *PostService) IncrementViewCount(ctx context.Context, slug string) (*dto.StatsDTO, error) {
	idx, err := s.posts.Index(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := idx.ByID(slug)
	if !ok {
		return nil, ErrPostNotFound
	}

	fallback := &dto.StatsDTO{
		StatsID:   p.Metadata.StatsID,
		ViewCount: p.Metadata.ViewCount,
		Likes:     p.Metadata.Likes,
		Comments:  p.Metadata.Comments,
	}
	if s.stats == nil {
		return fallback, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.statsTimeout)
	defer cancel()
	st, err := s.stats.IncrementViewCount(ctx, p.Metadata.StatsID)
	if err != nil {
		logger.WarnWithFields("stats increment failed, using metadata counts", logger.Fields{
			"slug":     p.Slug,
			"stats_id": p.Metadata.StatsID,
			"error":    err.Error(),
		})
		return fallback, nil
	}
	return &dto.StatsDTO{
		StatsID:   st.StatsID,
		ViewCount: st.ViewCount,
		Likes:     st.Likes,
		Comments:  st.Comments,
	}, nil
}

// Popular ranks posts by the stats store's view counters, filling the
// remaining slots by metadata view count. Without a usable store the
// ranking is metadata only.
func (s *PostService) Popular(ctx context.Context, limit int) ([]dto.PostSummaryDTO, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if limit == 0 {
		limit = DefaultPopularLimit
	}
	idx, err := s.posts.Index(ctx)
	if err != nil {
		return nil, err
	}

	byMeta := idx.Popular(idx.Len())
	if s.stats == nil {
		return dto.NewPostSummaryDTOs(take(byMeta, limit)), nil
	}

	sctx, cancel := context.WithTimeout(ctx, s.statsTimeout)
	defer cancel()
	top, err := s.stats.TopViewed(sctx, limit)
	if err != nil {
		logger.WarnWithFields("stats ranking failed, using metadata counts", logger.Fields{
			"error": err.Error(),
		})
		return dto.NewPostSummaryDTOs(take(byMeta, limit)), nil
	}

	byStatsID := make(map[string]models.Post, idx.Len())
	for _, p := range byMeta {
		byStatsID[p.Metadata.StatsID] = p
	}

	out := make([]dto.PostSummaryDTO, 0, limit)
	used := make(map[string]struct{}, limit)
	for i := range top {
		p, ok := byStatsID[top[i].StatsID]
		if !ok {
			// 코퍼스에서 빠진 글의 통계 문서는 건너뛴다.
			continue
		}
		d := dto.NewPostSummaryDTO(p)
		d.ApplyStats(&top[i])
		out = append(out, d)
		used[p.Slug] = struct{}{}
	}
	for _, p := range byMeta {
		if len(out) >= limit {
			break
		}
		if _, ok := used[p.Slug]; ok {
			continue
		}
		out = append(out, dto.NewPostSummaryDTO(p))
	}
	return out, nil
}

// Reload rebuilds the corpus and returns the number of posts loaded.
func (s *PostService) Reload(ctx context.Context) (int, error) {
	idx, err := s.posts.Reload(ctx)
	if err != nil {
		return 0, err
	}
	return idx.Len(), nil
}

func (s *PostService) mergeStats(ctx context.Context, d *dto.PostSummaryDTO) {
	if s.stats == nil || d.StatsID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.statsTimeout)
	defer cancel()

	st, err := s.stats.GetStats(ctx, d.StatsID)
	if errors.Is(err, repositories.ErrStatsNotFound) {
		// 처음 조회되는 글은 0 값 문서를 만들어 둔다. 표시는 메타데이터 값을 유지한다.
		if initErr := s.stats.InitStats(ctx, d.StatsID); initErr != nil {
			logger.WarnWithFields("stats init failed", logger.Fields{
				"stats_id": d.StatsID,
				"error":    initErr.Error(),
			})
		}
		return
	}
	if err != nil {
		logger.WarnWithFields("stats lookup failed, using metadata counts", logger.Fields{
			"stats_id": d.StatsID,
			"error":    err.Error(),
		})
		return
	}
	d.ApplyStats(st)
}

func intersect(a, b []models.Post) []models.Post {
	in := make(map[string]struct{}, len(b))
	for _, p := range b {
		in[p.Slug] = struct{}{}
	}
	out := make([]models.Post, 0, len(a))
	for _, p := range a {
		if _, ok := in[p.Slug]; ok {
			out = append(out, p)
		}
	}
	return out
}

func take(posts []models.Post, n int) []models.Post {
	if n < len(posts) {
		return posts[:n]
	}
	return posts
}

func toNameCounts(counts []repositories.NameCount) []dto.NameCountDTO {
	out := make([]dto.NameCountDTO, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.NameCountDTO{Name: c.Name, Count: c.Count})
	}
	return out
}

// IsClientError reports whether err was caused by bad caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// normalizeSort 는 대소문자와 공백을 무시한다.
func normalizeSort(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
