package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"event-scan-api/internal/pkg/database"
	"event-scan-api/internal/pkg/logger"
)

// HealthCheck 健康检查，数据库不可用时返回 503
// 用于 Docker 健康检查和负载均衡器
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		logger.Warnf("健康检查失败: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
