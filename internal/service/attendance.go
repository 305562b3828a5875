package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"event-scan-api/internal/model"
	"event-scan-api/internal/pkg/errs"
)

const (
	msgAlreadyCheckedIn = "User already checked in"
	msgNotCheckedIn     = "User is not checked in"
)

// AttendanceService 签到/签退状态切换，状态仅由 checked_in 决定
type AttendanceService struct {
	db    *gorm.DB
	users *UserService
	now   func() time.Time
}

func NewAttendanceService(db *gorm.DB, users *UserService) *AttendanceService {
	return &AttendanceService{db: db, users: users, now: utcNow}
}

// CheckIn 未签到 -> 已签到：清空 check_out_at 并记录 check_in_at
func (s *AttendanceService) CheckIn(ctx context.Context, badgeCode string) (*model.User, error) {
	now := s.now()
	return s.transition(ctx, badgeCode, false, map[string]interface{}{
		"checked_in":   true,
		"check_in_at":  now,
		"check_out_at": nil,
		"updated_at":   now,
	}, msgAlreadyCheckedIn)
}

// CheckOut 已签到 -> 未签到：记录 check_out_at
func (s *AttendanceService) CheckOut(ctx context.Context, badgeCode string) (*model.User, error) {
	now := s.now()
	return s.transition(ctx, badgeCode, true, map[string]interface{}{
		"checked_in":   false,
		"check_out_at": now,
		"updated_at":   now,
	}, msgNotCheckedIn)
}

// transition 以 checked_in 为条件更新，并发的重复请求只有一个会成功
func (s *AttendanceService) transition(ctx context.Context, badgeCode string, from bool, updates map[string]interface{}, conflictMsg string) (*model.User, error) {
	user, err := s.users.FindByBadge(ctx, badgeCode)
	if err != nil {
		return nil, err
	}
	if user.CheckedIn != from {
		return nil, errs.Conflict(conflictMsg, nil)
	}

	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND checked_in = ?", user.ID, from).
		Updates(updates)
	if result.Error != nil {
		return nil, storeError("update attendance", "", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.Conflict(conflictMsg, nil)
	}

	return s.users.Find(ctx, UserLookup{ID: &user.ID})
}
