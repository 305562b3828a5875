package service

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-scan-api/internal/model"
	"event-scan-api/internal/pkg/errs"
)

type ScanService struct {
	db         *gorm.DB
	users      *UserService
	activities *ActivityService
	now        func() time.Time
}

func NewScanService(db *gorm.DB, users *UserService, activities *ActivityService) *ScanService {
	return &ScanService{db: db, users: users, activities: activities, now: utcNow}
}

// RecordScanInput 刷卡请求
type RecordScanInput struct {
	BadgeCode        string
	ActivityName     string
	ActivityCategory string
}

// Record 为工牌对应用户记录一次活动刷卡，活动不存在时自动创建
func (s *ScanService) Record(ctx context.Context, in RecordScanInput) (*model.Scan, error) {
	if in.ActivityName == "" || in.ActivityCategory == "" {
		return nil, errs.Validation("activity_name and activity_category are required")
	}

	user, err := s.users.FindByBadge(ctx, in.BadgeCode)
	if err != nil {
		return nil, err
	}

	activity, err := s.activities.Ensure(ctx, in.ActivityName, in.ActivityCategory)
	if err != nil {
		return nil, err
	}

	var scan *model.Scan
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		scan, txErr = recordScan(tx, user.ID, activity.ID, nil, s.now())
		return txErr
	})
	if err != nil {
		return nil, storeError("record scan", "", err)
	}
	return scan, nil
}

// recordScan 在事务内校验次数上限并写入刷卡记录，同时刷新用户的 updated_at。
// 非 SQLite 驱动下对活动行加 FOR UPDATE 锁，使同一活动的上限校验串行化。
func recordScan(tx *gorm.DB, userID, activityID uint, scannedUserID *uint, at time.Time) (*model.Scan, error) {
	query := tx
	if tx.Dialector.Name() != "sqlite" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var activity model.Activity
	if err := query.First(&activity, activityID).Error; err != nil {
		return nil, err
	}

	if activity.MaxScans != nil {
		var count int64
		if err := tx.Model(&model.Scan{}).
			Where("user_id = ? AND activity_id = ?", userID, activityID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count >= int64(*activity.MaxScans) {
			return nil, errs.Validationf("Scan limit reached for activity '%s' (%d/%d)", activity.Name, count, *activity.MaxScans).
				With("current_count", count).
				With("max_scans", *activity.MaxScans)
		}
	}

	scan := &model.Scan{
		UserID:        userID,
		ActivityID:    activityID,
		ScannedUserID: scannedUserID,
		ScannedAt:     at,
	}
	if err := tx.Create(scan).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&model.User{}).Where("id = ?", userID).Update("updated_at", at).Error; err != nil {
		return nil, err
	}

	scan.Activity = &activity
	return scan, nil
}

// FrequencyFilter 频次统计过滤条件，上下限作用于每个活动的总次数
type FrequencyFilter struct {
	MinFrequency     *int
	MaxFrequency     *int
	ActivityCategory string
}

// ActivityFrequency 单个活动的刷卡次数
type ActivityFrequency struct {
	ActivityName     string `json:"activity_name"`
	ActivityCategory string `json:"activity_category"`
	Frequency        int64  `json:"frequency"`
}

// Frequencies 按活动分组统计刷卡次数，零次的活动不出现；min > max 时直接返回空结果
func (s *ScanService) Frequencies(ctx context.Context, filter FrequencyFilter) ([]ActivityFrequency, error) {
	result := make([]ActivityFrequency, 0)
	if filter.MinFrequency != nil && filter.MaxFrequency != nil && *filter.MinFrequency > *filter.MaxFrequency {
		return result, nil
	}

	query := s.db.WithContext(ctx).
		Model(&model.Scan{}).
		Select("activities.name AS activity_name, activities.category AS activity_category, COUNT(scans.id) AS frequency").
		Joins("JOIN activities ON activities.id = scans.activity_id")

	if filter.ActivityCategory != "" {
		query = query.Where("activities.category = ?", filter.ActivityCategory)
	}

	query = query.Group("activities.id, activities.name, activities.category")

	if filter.MinFrequency != nil {
		query = query.Having("COUNT(scans.id) >= ?", *filter.MinFrequency)
	}
	if filter.MaxFrequency != nil {
		query = query.Having("COUNT(scans.id) <= ?", *filter.MaxFrequency)
	}

	if err := query.Order("frequency DESC").Order("activities.name ASC").Scan(&result).Error; err != nil {
		return nil, storeError("aggregate scans", "", err)
	}
	if result == nil {
		result = make([]ActivityFrequency, 0)
	}
	return result, nil
}
