package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if cfg.Addr != want.Addr || cfg.LogLevel != want.LogLevel ||
		cfg.ReadTimeout != want.ReadTimeout || cfg.WriteTimeout != want.WriteTimeout ||
		cfg.MaxBodyBytes != want.MaxBodyBytes || cfg.DefaultTop != want.DefaultTop {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want empty", cfg.File)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FOLLOWGRAPH_ADDR", "127.0.0.1:9000")
	t.Setenv("FOLLOWGRAPH_LOG_LEVEL", "debug")
	t.Setenv("FOLLOWGRAPH_READ_TIMEOUT", "2s")
	t.Setenv("FOLLOWGRAPH_MAX_BODY_BYTES", "2048")
	t.Setenv("FOLLOWGRAPH_CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.LogLevel != log.DebugLevel {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.ReadTimeout)
	}
	if cfg.MaxBodyBytes != 2048 {
		t.Errorf("MaxBodyBytes = %d", cfg.MaxBodyBytes)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %q", cfg.CORSOrigins)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := "addr: \":7000\"\nwrite_timeout: 30s\ndefault_top: 3\n"
	if err := os.WriteFile(filepath.Join(dir, "followgraph.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLLOWGRAPH_DEFAULT_TOP", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7000" || cfg.WriteTimeout != 30*time.Second {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.DefaultTop != 5 {
		t.Errorf("env should override file, DefaultTop = %d", cfg.DefaultTop)
	}
	if cfg.File == "" {
		t.Error("File should name the file read")
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"FOLLOWGRAPH_LOG_LEVEL", "loud"},
		{"FOLLOWGRAPH_READ_TIMEOUT", "soon"},
		{"FOLLOWGRAPH_WRITE_TIMEOUT", "0s"},
		{"FOLLOWGRAPH_MAX_BODY_BYTES", "0"},
		{"FOLLOWGRAPH_CACHE_TTL", "-1m"},
		{"FOLLOWGRAPH_REDIS_DB", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)
			if _, err := Load(""); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadCache(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FOLLOWGRAPH_REDIS_ADDR", "localhost:6379")
	t.Setenv("FOLLOWGRAPH_REDIS_DB", "2")
	t.Setenv("FOLLOWGRAPH_CACHE_TTL", "15m")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Errorf("redis = %q db %d", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
}
