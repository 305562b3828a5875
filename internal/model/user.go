package model

import (
	"time"
)

// User 参会者，badge_code 全局唯一且非空
type User struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Name       string     `json:"name" gorm:"size:255;not null"`
	Email      string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Phone      *string    `json:"phone" gorm:"size:32"`
	BadgeCode  string     `json:"badge_code" gorm:"size:64;uniqueIndex;not null;check:chk_users_badge_code,badge_code <> ''"`
	UpdatedAt  time.Time  `json:"updated_at"`
	CheckedIn  bool       `json:"checked_in" gorm:"not null;default:false"`
	CheckInAt  *time.Time `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`

	Scans []Scan `json:"scans" gorm:"foreignKey:UserID"`
}

// UserSummary 对外暴露的精简用户信息（互扫记录中使用）
type UserSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	BadgeCode string `json:"badge_code"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		BadgeCode: u.BadgeCode,
	}
}
