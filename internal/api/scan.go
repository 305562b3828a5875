package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"event-scan-api/internal/service"
)

type RecordScanRequest struct {
	ActivityName     string `json:"activity_name"`
	ActivityCategory string `json:"activity_category"`
}

// RecordScan 为工牌记录一次活动刷卡
func (h *Handler) RecordScan(c *gin.Context) {
	var req RecordScanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Request body must be a JSON object")
		return
	}

	scan, err := h.services.Scan.Record(c.Request.Context(), service.RecordScanInput{
		BadgeCode:        c.Param("badge_code"),
		ActivityName:     req.ActivityName,
		ActivityCategory: req.ActivityCategory,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scan)
}

// optionalCount 解析非负整数查询参数，未提供时返回 nil
func optionalCount(c *gin.Context, key string) (*int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, false
	}
	return &v, true
}

// GetScanFrequencies 按活动统计刷卡次数
func (h *Handler) GetScanFrequencies(c *gin.Context) {
	minFreq, ok := optionalCount(c, "min_frequency")
	if !ok {
		badRequest(c, "min_frequency must be a non-negative integer")
		return
	}
	maxFreq, ok := optionalCount(c, "max_frequency")
	if !ok {
		badRequest(c, "max_frequency must be a non-negative integer")
		return
	}

	result, err := h.services.Scan.Frequencies(c.Request.Context(), service.FrequencyFilter{
		MinFrequency:     minFreq,
		MaxFrequency:     maxFreq,
		ActivityCategory: c.Query("activity_category"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func optionalTime(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	t = t.UTC()
	return &t, true
}

// GetActivityTimeline 按小时或分钟统计某活动的刷卡分布
func (h *Handler) GetActivityTimeline(c *gin.Context) {
	interval, err := service.ParseInterval(c.Query("interval"))
	if err != nil {
		respondError(c, err)
		return
	}
	start, ok := optionalTime(c, "start_time")
	if !ok {
		badRequest(c, "start_time must be an RFC3339 timestamp")
		return
	}
	end, ok := optionalTime(c, "end_time")
	if !ok {
		badRequest(c, "end_time must be an RFC3339 timestamp")
		return
	}

	buckets, err := h.services.Scan.Timeline(c.Request.Context(), service.TimelineQuery{
		ActivityName: c.Query("activity_name"),
		Interval:     interval,
		Range:        service.TimeRange{Start: start, End: end},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}
