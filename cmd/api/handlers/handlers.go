package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tech-blog/cache"
	"tech-blog/dto"
	"tech-blog/internal/logger"
	"tech-blog/services"
)

// writeError 는 서비스 오류를 HTTP 상태 코드로 변환한다.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var rebuildErr *cache.CacheRebuildError
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "post not found"})
	case services.IsClientError(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
	case errors.As(err, &rebuildErr):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponseDTO{Error: "content unavailable"})
	default:
		logger.ErrorWithFields("request failed", logger.Fields{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "internal error"})
	}
}

// queryInt 는 비어 있으면 def 를, 숫자가 아니면 ok=false 를 반환한다.
func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Reports service health. The stats store is checked only when enabled.
// @Tags         system
// @Produce      json
// @Success      200  {object}  object{status=string}
// @Failure      503  {object}  object{status=string,stats=string,error=string}
// @Router       /health [get]
func HealthHandler(statsPing func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if statsPing != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()
			if err := statsPing(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "stats": "down", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReloadHandler godoc
// @Summary      Reload content
// @Description  Rebuild the post corpus immediately, ignoring the cache freshness window
// @Tags         system
// @Produce      json
// @Success      200  {object}  dto.ReloadResponseDTO
// @Failure      503  {object}  dto.ErrorResponseDTO
// @Router       /reload [post]
func ReloadHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.Reload(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ReloadResponseDTO{Posts: n})
	}
}
