package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-scan-api/internal/model"
)

// SeedService 写入演示数据，按 email / 活动名称幂等
type SeedService struct {
	db *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{db: db}
}

// SeedResult 本次实际新增的数量
type SeedResult struct {
	Users      int64
	Activities int64
}

func intPtr(v int) *int { return &v }

// defaultActivities 演示用的签到点
func defaultActivities() []model.Activity {
	return []model.Activity{
		{Name: "Registration", Category: "check-in", MaxScans: intPtr(1)},
		{Name: "Breakfast", Category: "meal", MaxScans: intPtr(1)},
		{Name: "Lunch", Category: "meal", MaxScans: intPtr(1)},
		{Name: "Dinner", Category: "meal", MaxScans: intPtr(1)},
		{Name: "Workshop", Category: "workshop"},
		{Name: model.BadgeScanActivity, Category: model.SocialCategory},
	}
}

// NewBadgeCode 生成形如 BADGE-1A2B3C4D 的工牌码
func NewBadgeCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BADGE-" + strings.ToUpper(id[:8])
}

// Run 写入 users 个参会者和默认活动
func (s *SeedService) Run(ctx context.Context, users int) (*SeedResult, error) {
	if users < 0 {
		return nil, fmt.Errorf("users must not be negative")
	}

	result := &SeedResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activities := defaultActivities()
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&activities)
		if res.Error != nil {
			return fmt.Errorf("写入活动失败: %w", res.Error)
		}
		result.Activities = res.RowsAffected

		for i := 1; i <= users; i++ {
			user := model.User{
				Name:      fmt.Sprintf("Attendee %d", i),
				Email:     fmt.Sprintf("attendee%d@example.com", i),
				BadgeCode: NewBadgeCode(),
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}).Create(&user)
			if res.Error != nil {
				return fmt.Errorf("写入用户 %s 失败: %w", user.Email, res.Error)
			}
			result.Users += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
