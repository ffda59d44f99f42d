package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Notion.Timeout() != 30*time.Second {
		t.Errorf("http timeout = %v", cfg.Notion.Timeout())
	}
}

func clearNotionEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"NOTION_API_TOKEN", "NOTION_API_KEY", "NOTION_TOKEN", "NOTION_PAGE_ID", "NOTION_DATABASE_ID"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestNotionResolveEnv_ExplicitTokenWins(t *testing.T) {
	clearNotionEnv(t)
	t.Setenv("NOTION_API_TOKEN", "from-env")

	cfg := NotionConfig{Token: "from-config"}
	if err := cfg.ResolveEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "from-config" {
		t.Errorf("token = %q, explicit config must win", cfg.Token)
	}
}

func TestNotionResolveEnv_EnvPrecedence(t *testing.T) {
	clearNotionEnv(t)
	t.Setenv("NOTION_TOKEN", "last")
	t.Setenv("NOTION_API_KEY", "middle")
	t.Setenv("NOTION_API_TOKEN", "first")

	var cfg NotionConfig
	if err := cfg.ResolveEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "first" {
		t.Errorf("token = %q, want NOTION_API_TOKEN value", cfg.Token)
	}
}

func TestNotionResolveEnv_KeyFileFallback(t *testing.T) {
	clearNotionEnv(t)

	keyFile := filepath.Join(t.TempDir(), "notion.key")
	if err := os.WriteFile(keyFile, []byte("secret-from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := NotionConfig{KeyFile: keyFile}
	if err := cfg.ResolveEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "secret-from-file" {
		t.Errorf("token = %q, want trimmed file contents", cfg.Token)
	}
}

func TestNotionResolveEnv_KeyFileMissing(t *testing.T) {
	clearNotionEnv(t)

	cfg := NotionConfig{KeyFile: filepath.Join(t.TempDir(), "absent.key")}
	if err := cfg.ResolveEnv(); err == nil {
		t.Fatal("missing key file should be an error")
	}
}

func TestNotionResolveEnv_Targets(t *testing.T) {
	clearNotionEnv(t)
	t.Setenv("NOTION_PAGE_ID", "env-page")
	t.Setenv("NOTION_DATABASE_ID", "env-db")

	cfg := NotionConfig{PageID: "config-page"}
	if err := cfg.ResolveEnv(); err != nil {
		t.Fatal(err)
	}
	if cfg.PageID != "config-page" {
		t.Errorf("page id = %q, explicit config must win", cfg.PageID)
	}
	if cfg.DatabaseID != "env-db" {
		t.Errorf("database id = %q", cfg.DatabaseID)
	}
}
