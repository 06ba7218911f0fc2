package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("http.addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Dataset.Source != SourceFile || cfg.Dataset.Path != "dataset.csv.gz" {
		t.Errorf("dataset = %+v", cfg.Dataset)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("cache.ttl = %s", cfg.Cache.TTL)
	}
	if cfg.Render.Width != 900 || cfg.Render.Height != 540 {
		t.Errorf("render = %+v", cfg.Render)
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "dataset:\n  path: /data/credit.csv.gz\nworker:\n  concurrency: 9\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CREDITDASH_HTTP_ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dataset.Path != "/data/credit.csv.gz" {
		t.Errorf("dataset.path = %q", cfg.Dataset.Path)
	}
	if cfg.Worker.Concurrency != 9 {
		t.Errorf("worker.concurrency = %d", cfg.Worker.Concurrency)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Errorf("http.addr = %q, want env override", cfg.HTTP.Addr)
	}
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	t.Setenv("CREDITDASH_DATASET_SOURCE", "s3")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown dataset source")
	}
}

func TestDumpMasksSecrets(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Auth.APIKeys = []string{"secret-key"}
	cfg.Redis.Password = "hunter2"

	out, err := cfg.Dump()
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "secret-key") || strings.Contains(s, "hunter2") {
		t.Fatalf("secrets leaked:\n%s", s)
	}
	if !strings.Contains(s, ":8080") {
		t.Errorf("missing http addr in dump:\n%s", s)
	}
	if cfg.Auth.APIKeys[0] != "secret-key" {
		t.Error("Dump mutated the receiver")
	}
}
