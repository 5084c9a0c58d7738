package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"tech-blog/internal/logger"
)

// SlowRequestLogging 은 threshold 이상 걸린 요청을 경고로 남긴다.
// 캐시 만료 직후 콘텐츠 재로딩이 붙은 요청을 찾는 용도다.
func SlowRequestLogging(threshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		elapsed := time.Since(start)
		if elapsed < threshold {
			return
		}
		logger.Log.Warnf(
			"slow_request method=%s path=%s status=%d duration_ms=%d",
			method,
			path,
			c.Writer.Status(),
			elapsed.Milliseconds(),
		)
	}
}
