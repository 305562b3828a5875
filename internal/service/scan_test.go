package service

import (
	"context"
	"testing"
	"time"

	"event-scan-api/internal/model"
	"event-scan-api/internal/pkg/errs"
)

func TestRecordScanRequiresActivityFields(t *testing.T) {
	svc, db := newTestServices(t)
	createUser(t, db, "Alice", "alice@example.com", "BADGE-A")

	for _, in := range []RecordScanInput{
		{BadgeCode: "BADGE-A", ActivityCategory: "meal"},
		{BadgeCode: "BADGE-A", ActivityName: "Lunch"},
	} {
		_, err := svc.Scan.Record(context.Background(), in)
		wantKind(t, err, errs.KindValidation)
	}
}

func TestRecordScanUnknownBadge(t *testing.T) {
	svc, db := newTestServices(t)
	_, err := svc.Scan.Record(context.Background(), RecordScanInput{
		BadgeCode: "NOPE", ActivityName: "Lunch", ActivityCategory: "meal",
	})
	e := wantKind(t, err, errs.KindNotFound)
	if e.Msg != msgUserNotFound {
		t.Fatalf("msg=%q", e.Msg)
	}

	// 失败的刷卡不应创建活动
	var n int64
	db.Model(&model.Activity{}).Count(&n)
	if n != 0 {
		t.Fatalf("activities=%d, want 0", n)
	}
}

func TestRecordScanCreatesActivityOnce(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	alice := createUser(t, db, "Alice", "alice@example.com", "BADGE-A")

	first, err := svc.Scan.Record(ctx, RecordScanInput{BadgeCode: "BADGE-A", ActivityName: "Lunch", ActivityCategory: "meal"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	// 已存在的活动保留原分类
	second, err := svc.Scan.Record(ctx, RecordScanInput{BadgeCode: "BADGE-A", ActivityName: "Lunch", ActivityCategory: "food"})
	if err != nil {
		t.Fatalf("Record again: %v", err)
	}
	if first.ActivityID != second.ActivityID {
		t.Fatalf("activity ids differ: %d vs %d", first.ActivityID, second.ActivityID)
	}
	if second.Activity == nil || second.Activity.Category != "meal" {
		t.Fatalf("activity=%+v, want category meal", second.Activity)
	}

	var activities []model.Activity
	db.Find(&activities)
	if len(activities) != 1 {
		t.Fatalf("activities=%d, want 1", len(activities))
	}
	if got := countScans(t, db, alice.ID, first.ActivityID); got != 2 {
		t.Fatalf("scans=%d, want 2", got)
	}
}

func TestRecordScanEnforcesLimit(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	alice := createUser(t, db, "Alice", "alice@example.com", "BADGE-A")
	bob := createUser(t, db, "Bob", "bob@example.com", "BADGE-B")
	limit := 2
	dinner := createActivity(t, db, "Dinner", "meal", &limit)

	in := RecordScanInput{BadgeCode: "BADGE-A", ActivityName: "Dinner", ActivityCategory: "meal"}
	for i := 0; i < limit; i++ {
		if _, err := svc.Scan.Record(ctx, in); err != nil {
			t.Fatalf("scan %d: %v", i+1, err)
		}
	}

	_, err := svc.Scan.Record(ctx, in)
	e := wantKind(t, err, errs.KindValidation)
	if e.Msg != "Scan limit reached for activity 'Dinner' (2/2)" {
		t.Fatalf("msg=%q", e.Msg)
	}
	if e.Details["current_count"] != int64(2) || e.Details["max_scans"] != 2 {
		t.Fatalf("details=%v", e.Details)
	}
	if got := countScans(t, db, alice.ID, dinner.ID); got != 2 {
		t.Fatalf("scans=%d, want 2 after rejected scan", got)
	}

	// 上限按用户计算
	if _, err := svc.Scan.Record(ctx, RecordScanInput{BadgeCode: "BADGE-B", ActivityName: "Dinner", ActivityCategory: "meal"}); err != nil {
		t.Fatalf("bob scan: %v", err)
	}
	if got := countScans(t, db, bob.ID, dinner.ID); got != 1 {
		t.Fatalf("bob scans=%d, want 1", got)
	}
}

func TestRecordScanRefreshesUpdatedAt(t *testing.T) {
	svc, db := newTestServices(t)
	alice := createUser(t, db, "Alice", "alice@example.com", "BADGE-A")

	at := time.Date(2024, 3, 15, 18, 5, 0, 0, time.UTC)
	svc.Scan.now = fixedClock(at)

	scan, err := svc.Scan.Record(context.Background(), RecordScanInput{BadgeCode: "BADGE-A", ActivityName: "Dinner", ActivityCategory: "meal"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !scan.ScannedAt.Equal(at) || scan.UserID != alice.ID {
		t.Fatalf("scan=%+v", scan)
	}

	var reloaded model.User
	if err := db.First(&reloaded, alice.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.UpdatedAt.Equal(at) {
		t.Fatalf("updated_at=%v, want %v", reloaded.UpdatedAt, at)
	}
}

func intRef(v int) *int { return &v }

func TestScanFrequencies(t *testing.T) {
	svc, db := newTestServices(t)
	alice := createUser(t, db, "Alice", "alice@example.com", "BADGE-A")
	bob := createUser(t, db, "Bob", "bob@example.com", "BADGE-B")
	lunch := createActivity(t, db, "Lunch", "meal", nil)
	dinner := createActivity(t, db, "Dinner", "meal", nil)
	workshop := createActivity(t, db, "Workshop", "workshop", nil)
	createActivity(t, db, "Breakfast", "meal", nil) // 无刷卡记录

	now := time.Now()
	createScan(t, db, alice.ID, lunch.ID, now)
	createScan(t, db, alice.ID, lunch.ID, now)
	createScan(t, db, bob.ID, lunch.ID, now)
	createScan(t, db, bob.ID, dinner.ID, now)
	createScan(t, db, alice.ID, workshop.ID, now)
	createScan(t, db, bob.ID, workshop.ID, now)

	type row struct {
		name string
		freq int64
	}
	cases := []struct {
		name   string
		filter FrequencyFilter
		want   []row
	}{
		{"all", FrequencyFilter{}, []row{{"Lunch", 3}, {"Workshop", 2}, {"Dinner", 1}}},
		{"category", FrequencyFilter{ActivityCategory: "meal"}, []row{{"Lunch", 3}, {"Dinner", 1}}},
		{"min", FrequencyFilter{MinFrequency: intRef(2)}, []row{{"Lunch", 3}, {"Workshop", 2}}},
		{"max", FrequencyFilter{MaxFrequency: intRef(1)}, []row{{"Dinner", 1}}},
		{"min and max", FrequencyFilter{MinFrequency: intRef(2), MaxFrequency: intRef(2)}, []row{{"Workshop", 2}}},
		{"min above max", FrequencyFilter{MinFrequency: intRef(3), MaxFrequency: intRef(1)}, nil},
		{"unknown category", FrequencyFilter{ActivityCategory: "party"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Scan.Frequencies(context.Background(), tc.filter)
			if err != nil {
				t.Fatalf("Frequencies: %v", err)
			}
			if got == nil {
				t.Fatalf("result must not be nil")
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			for i, w := range tc.want {
				if got[i].ActivityName != w.name || got[i].Frequency != w.freq {
					t.Fatalf("row %d = %+v, want %+v", i, got[i], w)
				}
			}
		})
	}
}

func TestScanFrequenciesTieOrderByName(t *testing.T) {
	svc, db := newTestServices(t)
	alice := createUser(t, db, "Alice", "alice@example.com", "BADGE-A")
	b := createActivity(t, db, "Beta", "x", nil)
	a := createActivity(t, db, "Alpha", "x", nil)
	createScan(t, db, alice.ID, b.ID, time.Now())
	createScan(t, db, alice.ID, a.ID, time.Now())

	got, err := svc.Scan.Frequencies(context.Background(), FrequencyFilter{})
	if err != nil {
		t.Fatalf("Frequencies: %v", err)
	}
	if len(got) != 2 || got[0].ActivityName != "Alpha" || got[1].ActivityName != "Beta" {
		t.Fatalf("got %+v", got)
	}
	if got[0].ActivityCategory != "x" {
		t.Fatalf("category=%q", got[0].ActivityCategory)
	}
}
