package service

import (
	"context"
	"regexp"
	"testing"

	"event-scan-api/internal/model"
)

func TestNewBadgeCode(t *testing.T) {
	re := regexp.MustCompile(`^BADGE-[0-9A-F]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := NewBadgeCode()
		if !re.MatchString(code) {
			t.Fatalf("badge code %q", code)
		}
		if seen[code] {
			t.Fatalf("duplicate badge code %q", code)
		}
		seen[code] = true
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	res, err := svc.Seed.Run(ctx, 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Users != 3 || res.Activities != int64(len(defaultActivities())) {
		t.Fatalf("first run=%+v", res)
	}

	res, err = svc.Seed.Run(ctx, 5)
	if err != nil {
		t.Fatalf("Run again: %v", err)
	}
	if res.Users != 2 || res.Activities != 0 {
		t.Fatalf("second run=%+v", res)
	}

	var users int64
	db.Model(&model.User{}).Count(&users)
	if users != 5 {
		t.Fatalf("users=%d, want 5", users)
	}

	dinner, err := svc.Activity.FindByName(ctx, "Dinner")
	if err != nil || dinner == nil || dinner.MaxScans == nil || *dinner.MaxScans != 1 {
		t.Fatalf("dinner=%+v, %v", dinner, err)
	}

	if _, err := svc.Seed.Run(ctx, -1); err == nil {
		t.Fatalf("negative users must fail")
	}
}
