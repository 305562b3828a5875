package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"event-scan-api/internal/model"
	"event-scan-api/internal/pkg/errs"
)

const (
	msgUserNotFound      = "User not found"
	msgNoIdentifier      = "Provide one of id, email or badge_code"
	msgNoUpdatableField  = "Provide at least one valid field to update (name, email, phone, badge_code)"
	msgUserFieldConflict = "Email or badge_code already in use"
)

// UserLookup 按 id / email / badge_code 任意组合定位唯一用户，提供多个时需同时匹配
type UserLookup struct {
	ID        *uint
	Email     string
	BadgeCode string
}

func (l UserLookup) IsEmpty() bool {
	return l.ID == nil && l.Email == "" && l.BadgeCode == ""
}

func (l UserLookup) apply(db *gorm.DB) *gorm.DB {
	if l.ID != nil {
		db = db.Where("id = ?", *l.ID)
	}
	if l.Email != "" {
		db = db.Where("email = ?", l.Email)
	}
	if l.BadgeCode != "" {
		db = db.Where("badge_code = ?", l.BadgeCode)
	}
	return db
}

// ParseUserID 解析路径或查询参数中的用户ID
func ParseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, errs.Validation("id must be a positive integer")
	}
	return uint(id), nil
}

// LookupByIdentifier 根据标识类型（id 或 badge_code）构造查询条件
func LookupByIdentifier(identifier, idType string) (UserLookup, error) {
	switch idType {
	case "", "id":
		id, err := ParseUserID(identifier)
		if err != nil {
			return UserLookup{}, err
		}
		return UserLookup{ID: &id}, nil
	case "badge_code":
		if strings.TrimSpace(identifier) == "" {
			return UserLookup{}, errs.Validation("badge_code must not be empty")
		}
		return UserLookup{BadgeCode: identifier}, nil
	}
	return UserLookup{}, errs.Validation("type must be either 'id' or 'badge_code'")
}

// UserUpdate 可更新字段，nil 表示未提供
type UserUpdate struct {
	Name       *string
	Email      *string
	Phone      *string
	ClearPhone bool // 请求中 phone 显式为 null
	BadgeCode  *string
}

func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && !u.ClearPhone && u.BadgeCode == nil
}

// Validate 校验更新内容，不访问数据库
func (u UserUpdate) Validate() error {
	if u.IsEmpty() {
		return errs.Validation(msgNoUpdatableField)
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errs.Validation("name must not be empty")
	}
	if u.Email != nil && !strings.Contains(*u.Email, "@") {
		return errs.Validation("email must be a valid address")
	}
	if u.BadgeCode != nil && strings.TrimSpace(*u.BadgeCode) == "" {
		return errs.Validation("badge_code must not be empty")
	}
	return nil
}

func (u UserUpdate) columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		updates["email"] = strings.TrimSpace(*u.Email)
	}
	if u.BadgeCode != nil {
		updates["badge_code"] = strings.TrimSpace(*u.BadgeCode)
	}
	if u.ClearPhone {
		updates["phone"] = nil
	} else if u.Phone != nil {
		updates["phone"] = *u.Phone
	}
	return updates
}

type UserService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, now: utcNow}
}

// withScans 预加载用户的刷卡记录及对应活动，按时间升序
func withScans(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Scans", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("scanned_at ASC").Order("id ASC")
		}).
		Preload("Scans.Activity")
}

func normalizeScans(u *model.User) {
	if u.Scans == nil {
		u.Scans = []model.Scan{}
	}
}

// List 获取全部用户及其刷卡记录
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0)
	if err := withScans(s.db.WithContext(ctx)).Order("id ASC").Find(&users).Error; err != nil {
		return nil, storeError("list users", "", err)
	}
	for i := range users {
		normalizeScans(&users[i])
	}
	return users, nil
}

// Find 按查询条件获取单个用户（含刷卡记录）
func (s *UserService) Find(ctx context.Context, lookup UserLookup) (*model.User, error) {
	if lookup.IsEmpty() {
		return nil, errs.Validation(msgNoIdentifier)
	}

	var user model.User
	err := lookup.apply(withScans(s.db.WithContext(ctx))).First(&user).Error
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NotFound(msgUserNotFound)
		}
		return nil, storeError("find user", "", err)
	}
	normalizeScans(&user)
	return &user, nil
}

// FindByBadge 按工牌码获取用户（不含刷卡记录）
func (s *UserService) FindByBadge(ctx context.Context, badgeCode string) (*model.User, error) {
	return s.findBare(ctx, UserLookup{BadgeCode: badgeCode}, msgUserNotFound)
}

// FindByID 按ID获取用户（不含刷卡记录），notFoundMsg 为缺失时的提示
func (s *UserService) FindByID(ctx context.Context, id uint, notFoundMsg string) (*model.User, error) {
	return s.findBare(ctx, UserLookup{ID: &id}, notFoundMsg)
}

func (s *UserService) findBare(ctx context.Context, lookup UserLookup, notFoundMsg string) (*model.User, error) {
	if lookup.IsEmpty() {
		return nil, errs.Validation(msgNoIdentifier)
	}

	var user model.User
	if err := lookup.apply(s.db.WithContext(ctx)).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, errs.NotFound(notFoundMsg)
		}
		return nil, storeError("find user", "", err)
	}
	return &user, nil
}

// Update 更新用户的 name / email / phone / badge_code，校验失败时不访问数据库
func (s *UserService) Update(ctx context.Context, lookup UserLookup, update UserUpdate) (*model.User, error) {
	if lookup.IsEmpty() {
		return nil, errs.Validation(msgNoIdentifier)
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	user, err := s.findBare(ctx, lookup, msgUserNotFound)
	if err != nil {
		return nil, err
	}

	updates := update.columns()
	updates["updated_at"] = s.now()
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return nil, storeError("update user", msgUserFieldConflict, err)
	}

	return s.Find(ctx, UserLookup{ID: &user.ID})
}
