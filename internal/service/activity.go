package service

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-scan-api/internal/model"
	"event-scan-api/internal/pkg/errs"
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Ensure 按名称幂等创建活动；名称已存在时复用原记录并忽略传入的分类
func (s *ActivityService) Ensure(ctx context.Context, name, category string) (*model.Activity, error) {
	return ensureActivity(s.db.WithContext(ctx), name, category)
}

func ensureActivity(db *gorm.DB, name, category string) (*model.Activity, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" || category == "" {
		return nil, errs.Validation("activity_name and activity_category are required")
	}

	candidate := model.Activity{Name: name, Category: category}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, storeError("upsert activity", "", err)
	}

	var activity model.Activity
	if err := db.Where("name = ?", name).First(&activity).Error; err != nil {
		return nil, storeError("load activity", "", err)
	}
	return &activity, nil
}

// FindByName 按名称获取活动，不存在时返回 nil
func (s *ActivityService) FindByName(ctx context.Context, name string) (*model.Activity, error) {
	var activity model.Activity
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&activity).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeError("find activity", "", err)
	}
	return &activity, nil
}

// List 获取全部活动
func (s *ActivityService) List(ctx context.Context) ([]model.Activity, error) {
	activities := make([]model.Activity, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&activities).Error; err != nil {
		return nil, storeError("list activities", "", err)
	}
	return activities, nil
}
