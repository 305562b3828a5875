package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"event-scan-api/internal/model"
	"event-scan-api/internal/pkg/errs"
)

// Interval 时间线分桶粒度
type Interval string

const (
	IntervalHour   Interval = "hour"
	IntervalMinute Interval = "minute"
)

// ParseInterval 解析分桶粒度，空字符串默认按小时
func ParseInterval(raw string) (Interval, error) {
	switch Interval(raw) {
	case "", IntervalHour:
		return IntervalHour, nil
	case IntervalMinute:
		return IntervalMinute, nil
	}
	return "", errs.Validation("interval must be either 'hour' or 'minute'")
}

func (i Interval) layout() string {
	if i == IntervalMinute {
		return "2006-01-02T15:04"
	}
	return "2006-01-02T15"
}

// Label 返回时间点所在桶的 UTC 标签
func (i Interval) Label(t time.Time) string {
	return t.UTC().Format(i.layout())
}

// TimeRange 时间过滤区间，两端均为闭区间，nil 表示不限
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

func (r TimeRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// TimelineBucket 单个时间桶
type TimelineBucket struct {
	TimePeriod string `json:"time_period"`
	ScanCount  int    `json:"scan_count"`
}

// BucketTimeline 将按时间升序排列的时间点分桶计数。
// 只输出非空桶，顺序为首次出现顺序；输入未排序时输出顺序无定义。
func BucketTimeline(times []time.Time, interval Interval, r TimeRange) []TimelineBucket {
	buckets := make([]TimelineBucket, 0)
	index := make(map[string]int)

	for _, t := range times {
		if !r.Contains(t) {
			continue
		}
		label := interval.Label(t)
		if i, ok := index[label]; ok {
			buckets[i].ScanCount++
			continue
		}
		index[label] = len(buckets)
		buckets = append(buckets, TimelineBucket{TimePeriod: label, ScanCount: 1})
	}

	return buckets
}

// TimelineQuery 活动时间线查询条件
type TimelineQuery struct {
	ActivityName string
	Interval     Interval
	Range        TimeRange
}

// Timeline 查询活动在时间区间内的刷卡记录并分桶；活动不存在时返回空结果
func (s *ScanService) Timeline(ctx context.Context, q TimelineQuery) ([]TimelineBucket, error) {
	if q.ActivityName == "" {
		return nil, errs.Validation("activity_name is required")
	}
	if q.Interval == "" {
		q.Interval = IntervalHour
	}
	if q.Range.Start != nil && q.Range.End != nil && q.Range.Start.After(*q.Range.End) {
		return make([]TimelineBucket, 0), nil
	}

	var scans []model.Scan
	query := s.db.WithContext(ctx).
		Model(&model.Scan{}).
		Select("scans.id, scans.scanned_at").
		Joins("JOIN activities ON activities.id = scans.activity_id").
		Where("activities.name = ?", q.ActivityName)
	query = applyRange(query, q.Range)

	if err := query.Order("scans.scanned_at ASC").Order("scans.id ASC").Find(&scans).Error; err != nil {
		return nil, storeError("load activity timeline", "", err)
	}

	times := make([]time.Time, 0, len(scans))
	for _, scan := range scans {
		times = append(times, scan.ScannedAt)
	}
	return BucketTimeline(times, q.Interval, q.Range), nil
}

func applyRange(query *gorm.DB, r TimeRange) *gorm.DB {
	if r.Start != nil {
		query = query.Where("scans.scanned_at >= ?", r.Start.UTC())
	}
	if r.End != nil {
		query = query.Where("scans.scanned_at <= ?", r.End.UTC())
	}
	return query
}
