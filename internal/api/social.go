package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event-scan-api/internal/model"
	"event-scan-api/internal/pkg/errs"
	"event-scan-api/internal/service"
)

// BadgeScanResponse 互扫结果，附带被扫用户的精简信息
type BadgeScanResponse struct {
	*model.Scan
	ScannedUser model.UserSummary `json:"scanned_user"`
}

// ScanBadge 记录 scanner_id 扫描了 scanned_badge_code 的工牌
func (h *Handler) ScanBadge(c *gin.Context) {
	scannerID, err := service.ParseUserID(c.Param("scanner_id"))
	if err != nil {
		respondError(c, errs.Validation("scanner_id must be a positive integer"))
		return
	}

	scan, err := h.services.Social.ScanBadge(c.Request.Context(), scannerID, c.Param("scanned_badge_code"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := BadgeScanResponse{Scan: scan}
	if scan.ScannedUser != nil {
		resp.ScannedUser = scan.ScannedUser.Summary()
	}
	c.JSON(http.StatusOK, resp)
}

// GetScannedBadges 获取用户扫过的工牌，identifier 的含义由 type 决定（id 或 badge_code）
func (h *Handler) GetScannedBadges(c *gin.Context) {
	lookup, err := service.LookupByIdentifier(c.Param("identifier"), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	history, err := h.services.Social.ScannedBadges(c.Request.Context(), lookup)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
