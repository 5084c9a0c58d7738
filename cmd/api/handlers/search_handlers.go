package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tech-blog/services"
)

// SearchHandler godoc
// @Summary      Search posts
// @Description  Weighted full-text search over title, excerpt, tags, category path and body
// @Tags         search
// @Param        q         query  string    false  "Query (whitespace separated terms)"
// @Param        category  query  string    false  "Category path substring"
// @Param        tags      query  []string  false  "Tags (OR match)"
// @Param        from      query  string    false  "Published on or after (e.g. 2024-01-01)"
// @Param        to        query  string    false  "Published on or before"
// @Produce      json
// @Success      200  {object}  dto.SearchResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /search [get]
func SearchHandler(svc *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := svc.Search(c.Request.Context(), services.SearchInput{
			Query:    c.Query("q"),
			Category: c.Query("category"),
			Tags:     c.QueryArray("tags"),
			From:     c.Query("from"),
			To:       c.Query("to"),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
