package services

//go:generate mockgen -source=stats.go -destination=mocks/mock_stats_store.go -package=mocks

import (
	"context"

	"tech-blog/models"
)

// StatsStore is the optional engagement-counter collaborator.
// *repositories.StatsRepository implements it.
type StatsStore interface {
	GetStats(ctx context.Context, statsID string) (*models.PostStats, error)
	IncrementViewCount(ctx context.Context, statsID string) (*models.PostStats, error)
	InitStats(ctx context.Context, statsID string) error
	TopViewed(ctx context.Context, limit int) ([]models.PostStats, error)
}
