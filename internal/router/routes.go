package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event-scan-api/internal/api"
	"event-scan-api/internal/middleware"
)

// SetupRoutes 配置所有路由
func SetupRoutes(r *gin.Engine, h *api.Handler) {
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Cors())

	// 健康检查
	r.GET("/health", h.HealthCheck)

	// 用户
	r.GET("/users", h.GetUsers)
	r.GET("/user", h.GetUser)
	r.PUT("/user", h.UpdateUser)

	// 刷卡与统计
	r.POST("/scan/:badge_code", h.RecordScan)
	r.GET("/scans", h.GetScanFrequencies)
	r.GET("/activity-timeline", h.GetActivityTimeline)
	r.GET("/activities", h.ListActivities)

	// 签到签退
	r.POST("/check-in/:badge_code", h.CheckIn)
	r.POST("/check-out/:badge_code", h.CheckOut)

	// 互扫工牌
	r.POST("/scan-badge/:scanner_id/:scanned_badge_code", h.ScanBadge)
	r.GET("/scanned-badges/:identifier", h.GetScannedBadges)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

// New 创建已注册全部中间件与路由的引擎
func New(h *api.Handler) *gin.Engine {
	r := gin.New()
	SetupRoutes(r, h)
	return r
}
