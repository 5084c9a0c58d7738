package router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tech-blog/cmd/api/handlers"
	"tech-blog/cmd/api/middleware"
	_ "tech-blog/docs"
	"tech-blog/services"
)

type Dependencies struct {
	Posts  *services.PostService
	Search *services.SearchService
	// StatsPing 이 nil 이면 health 는 통계 저장소를 확인하지 않는다.
	StatsPing            func(ctx context.Context) error
	SlowRequestThreshold time.Duration
}

func New(d Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())
	if d.SlowRequestThreshold > 0 {
		r.Use(middleware.SlowRequestLogging(d.SlowRequestThreshold))
	}

	// Health check
	r.GET("/health", handlers.HealthHandler(d.StatsPing))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/posts", handlers.ListPostsHandler(d.Posts))
		api.GET("/posts/:slug", handlers.GetPostHandler(d.Posts))
		api.GET("/posts/:slug/related", handlers.RelatedPostsHandler(d.Posts))
		api.POST("/posts/:slug/view", handlers.IncrementPostViewCountHandler(d.Posts))
		api.GET("/featured", handlers.FeaturedPostHandler(d.Posts))
		api.GET("/popular", handlers.PopularPostsHandler(d.Posts))
		api.GET("/categories", handlers.ListCategoriesHandler(d.Posts))
		api.GET("/tags", handlers.ListTagsHandler(d.Posts))
		api.GET("/search", handlers.SearchHandler(d.Search))
		api.POST("/reload", handlers.ReloadHandler(d.Posts))
	}

	return r
}
