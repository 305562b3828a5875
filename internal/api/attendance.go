package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CheckIn(c *gin.Context) {
	user, err := h.services.Attendance.CheckIn(c.Request.Context(), c.Param("badge_code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) CheckOut(c *gin.Context) {
	user, err := h.services.Attendance.CheckOut(c.Request.Context(), c.Param("badge_code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
