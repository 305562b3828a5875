package service

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"event-scan-api/internal/model"
	"event-scan-api/internal/pkg/errs"
	"event-scan-api/internal/testutil"
)

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	return New(db), db
}

func createUser(t *testing.T, db *gorm.DB, name, email, badge string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: email, BadgeCode: badge}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func createActivity(t *testing.T, db *gorm.DB, name, category string, maxScans *int) *model.Activity {
	t.Helper()
	a := &model.Activity{Name: name, Category: category, MaxScans: maxScans}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("create activity %s: %v", name, err)
	}
	return a
}

func createScan(t *testing.T, db *gorm.DB, userID, activityID uint, at time.Time) *model.Scan {
	t.Helper()
	s := &model.Scan{UserID: userID, ActivityID: activityID, ScannedAt: at.UTC()}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("create scan: %v", err)
	}
	return s
}

func countScans(t *testing.T, db *gorm.DB, userID, activityID uint) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.Scan{}).Where("user_id = ? AND activity_id = ?", userID, activityID).Count(&n).Error; err != nil {
		t.Fatalf("count scans: %v", err)
	}
	return n
}

func wantKind(t *testing.T, err error, kind errs.Kind) *errs.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	e, ok := errs.As(err)
	if !ok || e.Kind != kind {
		t.Fatalf("err=%v, want kind %v", err, kind)
	}
	return e
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return v
}
