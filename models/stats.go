package models

import "time"

// PostStats stores engagement counters per post
// Collection: post_stats
type PostStats struct {
	StatsID   string    `bson:"stats_id" json:"stats_id"`
	ViewCount int64     `bson:"view_count" json:"view_count"`
	Likes     int64     `bson:"likes" json:"likes"`
	Comments  int64     `bson:"comments" json:"comments"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
