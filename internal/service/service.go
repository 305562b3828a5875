package service

import (
	"time"

	"gorm.io/gorm"
)

// Services 汇总所有业务服务，共享同一个数据库句柄
type Services struct {
	User       *UserService
	Activity   *ActivityService
	Scan       *ScanService
	Attendance *AttendanceService
	Social     *SocialService
	Seed       *SeedService
}

// New 基于显式传入的数据库句柄构建全部服务
func New(db *gorm.DB) *Services {
	users := NewUserService(db)
	activities := NewActivityService(db)
	scans := NewScanService(db, users, activities)

	return &Services{
		User:       users,
		Activity:   activities,
		Scan:       scans,
		Attendance: NewAttendanceService(db, users),
		Social:     NewSocialService(db, users, activities),
		Seed:       NewSeedService(db),
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
