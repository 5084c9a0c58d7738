//go:build integration

package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tech-blog/db"
	"tech-blog/repositories"
)

type StatsRepositoryIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *mongodb.MongoDBContainer
	client    *mongo.Client
	repo      *repositories.StatsRepository
}

func (s *StatsRepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := mongodb.Run(s.ctx, "mongo:7")
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(s.ctx)
	s.Require().NoError(err)

	client, database, err := db.Connect(s.ctx, uri, "techblog_test")
	s.Require().NoError(err)
	s.client = client
	s.repo = repositories.NewStatsRepository(database)
}

func (s *StatsRepositoryIntegrationSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Disconnect(s.ctx)
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *StatsRepositoryIntegrationSuite) SetupTest() {
	_, _ = s.client.Database("techblog_test").Collection(db.StatsCollection).DeleteMany(s.ctx, bson.M{})
}

func TestStatsRepositoryIntegrationSuite(t *testing.T) {
	suite.Run(t, new(StatsRepositoryIntegrationSuite))
}

func (s *StatsRepositoryIntegrationSuite) TestGetStats_NotFound() {
	_, err := s.repo.GetStats(s.ctx, "react-missing")
	s.ErrorIs(err, repositories.ErrStatsNotFound)
}

func (s *StatsRepositoryIntegrationSuite) TestInitStats_Idempotent() {
	s.Require().NoError(s.repo.InitStats(s.ctx, "react-hooks"))
	_, err := s.repo.IncrementViewCount(s.ctx, "react-hooks")
	s.Require().NoError(err)
	s.Require().NoError(s.repo.InitStats(s.ctx, "react-hooks"))

	stats, err := s.repo.GetStats(s.ctx, "react-hooks")
	s.Require().NoError(err)
	s.Equal(int64(1), stats.ViewCount)
	s.Equal(int64(0), stats.Likes)
}

func (s *StatsRepositoryIntegrationSuite) TestIncrementViewCount_Upserts() {
	stats, err := s.repo.IncrementViewCount(s.ctx, "typescript-generics")
	s.Require().NoError(err)
	s.Equal("typescript-generics", stats.StatsID)
	s.Equal(int64(1), stats.ViewCount)

	stats, err = s.repo.IncrementViewCount(s.ctx, "typescript-generics")
	s.Require().NoError(err)
	s.Equal(int64(2), stats.ViewCount)
	s.False(stats.CreatedAt.IsZero())
}

func (s *StatsRepositoryIntegrationSuite) TestTopViewed_OrdersByViewCount() {
	for id, views := range map[string]int{"react-hooks": 3, "css-grid": 1, "typescript-generics": 5} {
		for i := 0; i < views; i++ {
			_, err := s.repo.IncrementViewCount(s.ctx, id)
			s.Require().NoError(err)
		}
	}
	s.Require().NoError(s.repo.InitStats(s.ctx, "react-nextjs"))

	top, err := s.repo.TopViewed(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("typescript-generics", top[0].StatsID)
	s.Equal(int64(5), top[0].ViewCount)
	s.Equal("react-hooks", top[1].StatsID)
}
