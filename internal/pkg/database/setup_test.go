package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"event-scan-api/internal/config"
	"event-scan-api/internal/model"
)

func TestDSN(t *testing.T) {
	cases := []struct {
		cfg  config.DatabaseConfig
		want string
	}{
		{
			cfg:  config.DatabaseConfig{Driver: "mysql", Username: "u", Password: "p", Host: "db", Port: "3306", DBName: "events"},
			want: "u:p@tcp(db:3306)/events?",
		},
		{
			cfg:  config.DatabaseConfig{Driver: "postgres", Username: "u", Password: "p", Host: "db", Port: "5432", DBName: "events", SSLMode: "disable"},
			want: "host=db port=5432 user=u password=p dbname=events sslmode=disable",
		},
		{
			cfg:  config.DatabaseConfig{Driver: "sqlite", Path: "data/events.db"},
			want: "data/events.db?_pragma=foreign_keys(1)",
		},
		{
			cfg:  config.DatabaseConfig{Driver: "sqlite", Path: "file:x?mode=memory"},
			want: "file:x?mode=memory&_pragma=foreign_keys(1)",
		},
	}
	for _, tc := range cases {
		got, err := DSN(tc.cfg)
		if err != nil {
			t.Fatalf("DSN(%s): %v", tc.cfg.Driver, err)
		}
		if !strings.HasPrefix(got, tc.want) {
			t.Fatalf("DSN(%s)=%q, want prefix %q", tc.cfg.Driver, got, tc.want)
		}
	}

	if _, err := DSN(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestOpenMigrateClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.db")
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := Ping(context.Background(), db); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	for _, m := range []interface{}{&model.User{}, &model.Activity{}, &model.Scan{}} {
		if !db.Migrator().HasTable(m) {
			t.Fatalf("table for %T not created", m)
		}
	}

	if err := Close(db); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := Ping(context.Background(), db); err == nil {
		t.Fatalf("Ping after Close succeeded")
	}
}
