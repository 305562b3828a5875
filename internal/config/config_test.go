package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("server:\n  port: \"9090\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port=%q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" || cfg.Server.ShutdownTimeout != 10 {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path == "" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" || cfg.Log.Output != "console" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestParseDriverPorts(t *testing.T) {
	cases := []struct {
		driver string
		port   string
	}{
		{"mysql", "3306"},
		{"POSTGRES", "5432"},
	}
	for _, tc := range cases {
		cfg, err := Parse([]byte("database:\n  driver: " + tc.driver + "\n"))
		if err != nil {
			t.Fatalf("Parse(%s): %v", tc.driver, err)
		}
		if cfg.Database.Port != tc.port {
			t.Fatalf("driver=%s port=%q, want %q", tc.driver, cfg.Database.Port, tc.port)
		}
	}
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	if _, err := Parse([]byte("database:\n  driver: oracle\n")); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestParseExpandsPassword(t *testing.T) {
	t.Setenv("EVENTS_DB_PASSWORD", "s3cret")
	cfg, err := Parse([]byte("database:\n  driver: postgres\n  password: ${EVENTS_DB_PASSWORD}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Password != "s3cret" {
		t.Fatalf("password=%q, want expanded value", cfg.Database.Password)
	}
}

func TestLoadAndResolvePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_PATH", path)
	resolved, err := ResolvePath("")
	if err != nil || resolved != path {
		t.Fatalf("ResolvePath = %q, %v; want %q", resolved, err, path)
	}

	cfg, err := Load(resolved)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("level=%q, want debug", cfg.Log.Level)
	}

	if got, _ := ResolvePath("explicit.yaml"); got != "explicit.yaml" {
		t.Fatalf("explicit path ignored: %q", got)
	}
}
