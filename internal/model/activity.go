package model

// Activity 签到点/活动类别，首次被扫码引用时按名称懒创建
type Activity struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Category string `json:"category" gorm:"size:128;not null;index"`
	MaxScans *int   `json:"max_scans"` // 为空表示不限次数
}

const (
	BadgeScanActivity = "badge-scan"
	SocialCategory    = "social"
)
