package model

import (
	"time"
)

// Scan 一次刷卡记录，创建后不再修改或删除
type Scan struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"userId" gorm:"not null;index:idx_scans_user_activity,priority:1"`
	ActivityID    uint      `json:"activityId" gorm:"not null;index:idx_scans_user_activity,priority:2"`
	ScannedUserID *uint     `json:"scannedUserId,omitempty" gorm:"index"` // 仅互扫记录：被扫的用户
	ScannedAt     time.Time `json:"scanned_at" gorm:"not null;index"`

	User        *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Activity    *Activity `json:"activity,omitempty" gorm:"foreignKey:ActivityID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ScannedUser *User     `json:"-" gorm:"foreignKey:ScannedUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
