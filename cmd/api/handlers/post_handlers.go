package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tech-blog/dto"
	"tech-blog/services"
)

// ListPostsHandler godoc
// @Summary      List posts
// @Description  List posts filtered by category and tag (case-insensitive exact match)
// @Tags         posts
// @Param        category  query  string  false  "Category display name"
// @Param        tag       query  string  false  "Tag"
// @Param        sort      query  string  false  "Sort order"  Enums(recent, popular)
// @Param        limit     query  int     false  "Maximum number of posts (0 = all)"
// @Produce      json
// @Success      200  {object}  dto.PostListDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /posts [get]
func ListPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := queryInt(c, "limit", 0)
		if !ok {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "limit must be an integer"})
			return
		}

		out, err := svc.List(c.Request.Context(), services.ListPostsInput{
			Category: c.Query("category"),
			Tag:      c.Query("tag"),
			Sort:     c.Query("sort"),
			Limit:    limit,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GetPostHandler godoc
// @Summary      Get post by slug
// @Description  Get a single post with its body. Counters come from the stats store when available.
// @Tags         posts
// @Param        slug      path   string  true   "Post slug"
// @Param        category  query  string  false  "Require the post to belong to this category"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{slug} [get]
func GetPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"), c.Query("category"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// RelatedPostsHandler godoc
// @Summary      Related posts
// @Description  Posts ranked by shared category (+2) and shared tags (+1 each)
// @Tags         posts
// @Param        slug   path   string  true   "Post slug"
// @Param        limit  query  int     false  "Maximum number of posts (default 3)"
// @Produce      json
// @Success      200  {array}   dto.PostSummaryDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{slug}/related [get]
func RelatedPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := queryInt(c, "limit", services.DefaultRelatedLimit)
		if !ok {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "limit must be an integer"})
			return
		}
		posts, err := svc.Related(c.Request.Context(), c.Param("slug"), limit)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// IncrementPostViewCountHandler godoc
// @Summary      Increment post view count
// @Description  Increment the stored view count of a post by 1
// @Tags         posts
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.StatsDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{slug}/view [post]
func IncrementPostViewCountHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.IncrementViewCount(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// FeaturedPostHandler godoc
// @Summary      Featured post
// @Description  The first post of the corpus
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /featured [get]
func FeaturedPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.Featured(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// PopularPostsHandler godoc
// @Summary      Popular posts
// @Description  Posts ranked by stats-store view counts, filled up by metadata view counts
// @Tags         posts
// @Param        limit  query  int  false  "Maximum number of posts (default 5)"
// @Produce      json
// @Success      200  {array}   dto.PostSummaryDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /popular [get]
func PopularPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := queryInt(c, "limit", services.DefaultPopularLimit)
		if !ok {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "limit must be an integer"})
			return
		}

		posts, err := svc.Popular(c.Request.Context(), limit)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// ListCategoriesHandler godoc
// @Summary      List categories
// @Description  Categories with post counts, most used first
// @Tags         taxonomy
// @Produce      json
// @Success      200  {array}  dto.NameCountDTO
// @Router       /categories [get]
func ListCategoriesHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Categories(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// ListTagsHandler godoc
// @Summary      List tags
// @Description  Tags with post counts, most used first
// @Tags         taxonomy
// @Produce      json
// @Success      200  {array}  dto.NameCountDTO
// @Router       /tags [get]
func ListTagsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Tags(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
