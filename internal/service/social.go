package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"event-scan-api/internal/model"
	"event-scan-api/internal/pkg/errs"
)

// SocialService 参会者之间互扫工牌
type SocialService struct {
	db         *gorm.DB
	users      *UserService
	activities *ActivityService
	now        func() time.Time
}

func NewSocialService(db *gorm.DB, users *UserService, activities *ActivityService) *SocialService {
	return &SocialService{db: db, users: users, activities: activities, now: utcNow}
}

// ScanBadge 记录 scannerID 扫描了 scannedBadgeCode 对应用户的工牌
func (s *SocialService) ScanBadge(ctx context.Context, scannerID uint, scannedBadgeCode string) (*model.Scan, error) {
	scanner, err := s.users.FindByID(ctx, scannerID, "Scanner not found")
	if err != nil {
		return nil, err
	}

	scanned, err := s.users.findBare(ctx, UserLookup{BadgeCode: scannedBadgeCode}, "Scanned user not found")
	if err != nil {
		return nil, err
	}

	if scanner.ID == scanned.ID {
		return nil, errs.Validation("Cannot scan your own badge")
	}

	activity, err := s.activities.Ensure(ctx, model.BadgeScanActivity, model.SocialCategory)
	if err != nil {
		return nil, err
	}

	var scan *model.Scan
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		scan, txErr = recordScan(tx, scanner.ID, activity.ID, &scanned.ID, s.now())
		return txErr
	})
	if err != nil {
		return nil, storeError("record badge scan", "", err)
	}

	scan.ScannedUser = scanned
	return scan, nil
}

// BadgeScanEntry 一条互扫记录
type BadgeScanEntry struct {
	ScanID    uint              `json:"scan_id"`
	ScannedAt time.Time         `json:"scanned_at"`
	User      model.UserSummary `json:"user"`
}

// BadgeHistory 某个用户扫过的工牌列表
type BadgeHistory struct {
	UserID        uint             `json:"user_id"`
	BadgeCode     string           `json:"badge_code"`
	Total         int              `json:"total"`
	ScannedBadges []BadgeScanEntry `json:"scanned_badges"`
}

// ScannedBadges 获取用户的互扫历史，最新的在前
func (s *SocialService) ScannedBadges(ctx context.Context, lookup UserLookup) (*BadgeHistory, error) {
	user, err := s.users.findBare(ctx, lookup, msgUserNotFound)
	if err != nil {
		return nil, err
	}

	var scans []model.Scan
	err = s.db.WithContext(ctx).
		Model(&model.Scan{}).
		Select("scans.*").
		Joins("JOIN activities ON activities.id = scans.activity_id").
		Where("scans.user_id = ? AND activities.name = ?", user.ID, model.BadgeScanActivity).
		Preload("ScannedUser").
		Order("scans.scanned_at DESC").
		Order("scans.id DESC").
		Find(&scans).Error
	if err != nil {
		return nil, storeError("list badge scans", "", err)
	}

	history := &BadgeHistory{
		UserID:        user.ID,
		BadgeCode:     user.BadgeCode,
		ScannedBadges: make([]BadgeScanEntry, 0, len(scans)),
	}
	for _, scan := range scans {
		if scan.ScannedUser == nil {
			continue
		}
		history.ScannedBadges = append(history.ScannedBadges, BadgeScanEntry{
			ScanID:    scan.ID,
			ScannedAt: scan.ScannedAt,
			User:      scan.ScannedUser.Summary(),
		})
	}
	history.Total = len(history.ScannedBadges)
	return history, nil
}
