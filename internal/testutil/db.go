package testutil

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"event-scan-api/internal/config"
	"event-scan-api/internal/pkg/database"
)

// OpenTestDB 打开独立的内存 SQLite（开启外键）并自动迁移所有表
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
