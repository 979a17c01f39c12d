package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.Token != "" {
		t.Errorf("expected no default token, got %s", cfg.GitHub.Token)
	}
	if cfg.GitHub.APIURL != "" {
		t.Errorf("expected no default api_url, got %s", cfg.GitHub.APIURL)
	}
	if cfg.GitHub.WaitOnRateLimit {
		t.Error("expected rate limit waiting to be off by default")
	}
}

func TestLoadJSONC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.jsonc")

	content := []byte(`{
  // This is a JSONC comment
  "github": {
    "api_url": "https://ghe.example.com/api/v3",
  }
}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	m, err := loadJSONC(path)
	if err != nil {
		t.Fatalf("loadJSONC failed: %v", err)
	}

	gh, ok := m["github"].(map[string]any)
	if !ok {
		t.Fatal("expected github to be a map")
	}
	if gh["api_url"] != "https://ghe.example.com/api/v3" {
		t.Errorf("expected api_url, got %v", gh["api_url"])
	}
}

func TestLoadJSONC_FileNotFound(t *testing.T) {
	_, err := loadJSONC("/nonexistent/path/config.jsonc")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadJSONC_MalformedContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.jsonc")

	if err := os.WriteFile(path, []byte(`{"github": {"api_url": "x"`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	_, err := loadJSONC(path)
	if err == nil {
		t.Error("expected error for malformed JSONC")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "issuepr.yml")

	content := []byte(`# repo settings
github:
  wait_on_rate_limit: true
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	m, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}

	cfg := DefaultConfig()
	if err := mergeIntoConfig(&cfg, m); err != nil {
		t.Fatalf("mergeIntoConfig failed: %v", err)
	}
	if !cfg.GitHub.WaitOnRateLimit {
		t.Error("expected wait_on_rate_limit=true from YAML")
	}
}

func TestLoadYAML_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	m, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

func TestMergeDeepPreservesNestedFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GitHub.Token = "user-token"

	src := map[string]any{
		"github": map[string]any{
			"api_url": "https://ghe.example.com/api/v3",
		},
	}
	if err := mergeIntoConfig(&cfg, src); err != nil {
		t.Fatalf("mergeIntoConfig failed: %v", err)
	}

	if cfg.GitHub.APIURL != "https://ghe.example.com/api/v3" {
		t.Errorf("expected api_url override, got %s", cfg.GitHub.APIURL)
	}
	if cfg.GitHub.Token != "user-token" {
		t.Errorf("expected token preserved, got %s", cfg.GitHub.Token)
	}
}

func TestMergeIgnoresPipelineSettings(t *testing.T) {
	cfg := DefaultConfig()

	src := map[string]any{
		"branch":       map[string]any{"prefix": "feature", "word_count": json.Number("5")},
		"pull_request": map[string]any{"base": "main", "draft": false},
	}
	if err := mergeIntoConfig(&cfg, src); err != nil {
		t.Fatalf("mergeIntoConfig failed: %v", err)
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := m["branch"]; ok {
		t.Error("branch settings must not survive the merge")
	}
	if _, ok := m["pull_request"]; ok {
		t.Error("pull_request settings must not survive the merge")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("GITHUB_TOKEN", "gh-token-456")

	applyEnvOverrides(&cfg)

	if cfg.GitHub.Token != "gh-token-456" {
		t.Errorf("expected token=gh-token-456, got %s", cfg.GitHub.Token)
	}
}

func TestLoadMergesUserAndOverride(t *testing.T) {
	userConfigDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", userConfigDir)
	t.Setenv("HOME", t.TempDir())

	// Run from a directory outside any repository.
	t.Chdir(t.TempDir())

	t.Setenv("GITHUB_TOKEN", "")

	appDir := filepath.Join(userConfigDir, "issuepr")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	userConfig := []byte(`{"github":{"token":"user-token","api_url":"https://user.example.com/api/v3"}}`)
	if err := os.WriteFile(filepath.Join(appDir, "issuepr.jsonc"), userConfig, 0644); err != nil {
		t.Fatalf("failed to write user config: %v", err)
	}

	overridePath := filepath.Join(t.TempDir(), "override.yml")
	if err := os.WriteFile(overridePath, []byte("github:\n  api_url: https://override.example.com/api/v3\n"), 0644); err != nil {
		t.Fatalf("failed to write override config: %v", err)
	}

	cfg, err := Load(overridePath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GitHub.APIURL != "https://override.example.com/api/v3" {
		t.Errorf("expected override api_url, got %s", cfg.GitHub.APIURL)
	}
	if cfg.GitHub.Token != "user-token" {
		t.Errorf("expected user token preserved, got %s", cfg.GitHub.Token)
	}
}

func TestLoad_MissingOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if _, err := Load(filepath.Join(t.TempDir(), "missing.jsonc")); err == nil {
		t.Error("expected error for missing --config file")
	}
}
