package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListActivities 获取全部活动
func (h *Handler) ListActivities(c *gin.Context) {
	activities, err := h.services.Activity.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}
