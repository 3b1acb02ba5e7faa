package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, v, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() without a config file failed: %v", err)
	}
	if v == nil {
		t.Fatal("Load() returned nil viper instance")
	}

	if cfg.APIPort != "8080" {
		t.Errorf("APIPort = %q, want 8080", cfg.APIPort)
	}
	if cfg.AdminPort != "8081" {
		t.Errorf("AdminPort = %q, want 8081", cfg.AdminPort)
	}
	if cfg.DataDir != ".builder_data" {
		t.Errorf("DataDir = %q, want .builder_data", cfg.DataDir)
	}
	if cfg.AutosaveInterval != 1500*time.Millisecond {
		t.Errorf("AutosaveInterval = %v, want 1.5s", cfg.AutosaveInterval)
	}
	if cfg.StorageQuotaBytes != 5*1024*1024 {
		t.Errorf("StorageQuotaBytes = %d, want %d", cfg.StorageQuotaBytes, 5*1024*1024)
	}
	if cfg.PresenceBuffer != 16 {
		t.Errorf("PresenceBuffer = %d, want 16", cfg.PresenceBuffer)
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("api_port: \"9090\"\nautosave_interval: 500ms\nstorage_quota_bytes: 1024\n")
	if err := os.WriteFile(filepath.Join(dir, "builderd.yaml"), content, 0644); err != nil {
		t.Fatalf("Setup failed: could not write config file: %v", err)
	}

	cfg, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.APIPort != "9090" {
		t.Errorf("APIPort = %q, want 9090", cfg.APIPort)
	}
	if cfg.AutosaveInterval != 500*time.Millisecond {
		t.Errorf("AutosaveInterval = %v, want 500ms", cfg.AutosaveInterval)
	}
	if cfg.StorageQuotaBytes != 1024 {
		t.Errorf("StorageQuotaBytes = %d, want 1024", cfg.StorageQuotaBytes)
	}
	// Untouched settings keep their defaults.
	if cfg.AdminPort != "8081" {
		t.Errorf("AdminPort = %q, want default 8081", cfg.AdminPort)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BUILDER_API_PORT", "7070")
	t.Setenv("BUILDER_DATA_DIR", "/tmp/override")

	cfg, _, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.APIPort != "7070" {
		t.Errorf("APIPort = %q, want env override 7070", cfg.APIPort)
	}
	if cfg.DataDir != "/tmp/override" {
		t.Errorf("DataDir = %q, want env override /tmp/override", cfg.DataDir)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "builderd.yaml"), []byte("api_port: [unclosed"), 0644); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, _, err := Load(dir); err == nil {
		t.Error("Load() with malformed config file succeeded, expected error")
	}
}
