package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"event-scan-api/internal/pkg/errs"
	"event-scan-api/internal/pkg/logger"
	"event-scan-api/internal/service"
)

const msgInternalError = "Internal server error"

// Handler 持有所有接口依赖的服务
type Handler struct {
	db       *gorm.DB
	services *service.Services
}

func NewHandler(db *gorm.DB, services *service.Services) *Handler {
	return &Handler{db: db, services: services}
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError 将服务层错误转换为 {"error": ...} 响应，存储错误只记录日志不外泄
func respondError(c *gin.Context, err error) {
	e, ok := errs.As(err)
	if !ok {
		e = errs.Store("unclassified error", err)
	}

	status := statusFor(e.Kind)
	if status == http.StatusInternalServerError {
		logger.Errorf("请求处理失败 [%s] %s %s: %v",
			c.GetString("requestId"),
			c.Request.Method,
			c.Request.URL.Path,
			err)
		c.JSON(status, gin.H{"error": msgInternalError})
		return
	}

	body := gin.H{"error": e.Msg}
	for k, v := range e.Details {
		body[k] = v
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
