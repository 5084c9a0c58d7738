package app

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"tech-blog/cache"
	"tech-blog/config"
	"tech-blog/db"
	"tech-blog/internal/logger"
	"tech-blog/loader"
	"tech-blog/repositories"
	"tech-blog/search"
	"tech-blog/services"
)

// App bundles the wired components shared by the API server and the CLI.
type App struct {
	Config config.AppConfig
	Loader *loader.Loader
	Repo   *repositories.PostRepository
	Posts  *services.PostService
	Search *services.SearchService
	// StatsPing 은 통계 저장소가 비활성화되어 있으면 nil 이다.
	StatsPing func(ctx context.Context) error
}

// New wires loader -> cache -> repository -> services from cfg.
// 통계 저장소 연결에 실패해도 메타데이터 카운터로 계속 동작한다.
func New(ctx context.Context, cfg config.AppConfig) (*App, error) {
	l, err := loader.NewFromConfig(cfg.Content)
	if err != nil {
		return nil, err
	}

	postCache := cache.New(cfg.Cache.FreshnessWindow)
	repo := repositories.NewPostRepository(l, postCache, cfg.Cache.Key)

	a := &App{Config: cfg, Loader: l, Repo: repo}

	var stats services.StatsStore
	if err := db.Init(ctx, cfg.Stats); err != nil {
		if !errors.Is(err, db.ErrStatsDisabled) {
			logger.WarnWithFields("stats store unavailable, using metadata counts", logger.Fields{
				"error": err.Error(),
			})
		}
	} else {
		stats = repositories.NewStatsRepository(db.Database())
		a.StatsPing = func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		}
	}

	a.Posts = services.NewPostService(repo, stats, cfg.Stats.Timeout)
	a.Search = services.NewSearchService(repo, search.NewEngine())
	return a, nil
}

// Watcher returns a content watcher that reloads the corpus on change, or
// nil when content is fetched over HTTP.
func (a *App) Watcher() *loader.Watcher {
	if a.Config.Content.BaseURL != "" || a.Config.Content.Root == "" {
		return nil
	}
	return loader.NewWatcher(a.Config.Content.Root, a.Config.Content.Extension, loader.DefaultDebounce, func(ctx context.Context) {
		idx, err := a.Repo.Reload(ctx)
		if err != nil {
			logger.ErrorWithFields("content reload failed", logger.Fields{"error": err.Error()})
			return
		}
		logger.InfoWithFields("content reloaded", logger.Fields{"posts": idx.Len()})
	})
}

func (a *App) Close(ctx context.Context) error {
	return db.Disconnect(ctx)
}
