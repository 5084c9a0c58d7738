package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tech-blog/db"
	"tech-blog/models"
)

var ErrStatsNotFound = errors.New("stats not found")

// StatsRepository 는 post_stats 컬렉션의 조회수/좋아요/댓글 카운터를 다룬다.
type StatsRepository struct {
	col *mongo.Collection
}

func NewStatsRepository(d *mongo.Database) *StatsRepository {
	return &StatsRepository{col: d.Collection(db.StatsCollection)}
}

// GetStats returns the counters stored for statsID.
func (r *StatsRepository) GetStats(ctx context.Context, statsID string) (*models.PostStats, error) {
	var s models.PostStats
	err := r.col.FindOne(ctx, bson.M{"stats_id": statsID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrStatsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// IncrementViewCount increments view_count by 1, creating the document when missing.
func (r *StatsRepository) IncrementViewCount(ctx context.Context, statsID string) (*models.PostStats, error) {
	now := time.Now()
	update := bson.M{
		"$inc":         bson.M{"view_count": 1},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"created_at": now, "likes": 0, "comments": 0},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var s models.PostStats
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"stats_id": statsID}, update, opts).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// InitStats creates a zeroed stats document when none exists.
// 이미 존재하는 문서는 건드리지 않는다.
func (r *StatsRepository) InitStats(ctx context.Context, statsID string) error {
	now := time.Now()
	update := bson.M{
		"$setOnInsert": bson.M{
			"view_count": 0,
			"likes":      0,
			"comments":   0,
			"created_at": now,
			"updated_at": now,
		},
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"stats_id": statsID}, update, options.Update().SetUpsert(true))
	return err
}

// TopViewed returns up to limit stats documents ordered by view_count desc.
func (r *StatsRepository) TopViewed(ctx context.Context, limit int) ([]models.PostStats, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "view_count", Value: -1}, {Key: "stats_id", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.PostStats, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
