package internal

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Environment variables consulted for Notion credentials, in order.
var tokenEnvVars = []string{"NOTION_API_TOKEN", "NOTION_API_KEY", "NOTION_TOKEN"}

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Journal JournalConfig     `yaml:"journal"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	Notion  NotionConfig      `yaml:"notion"`
	Git     GitConfig         `yaml:"git"`
	Session SessionConfig     `yaml:"session"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Journal.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Notion.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// JournalConfig holds the path to the Markdown journal directory.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the journal configuration.
func (c *JournalConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// MCPConfig describes the external MCP server subprocess used as the
// primary Notion transport.
type MCPConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// NotionConfig holds the Notion integration settings. Everything here
// is optional; with no token and no target the remote sync is simply
// disabled.
type NotionConfig struct {
	Token       string        `yaml:"token"`
	KeyFile     string        `yaml:"key_file"`
	PageID      string        `yaml:"page_id"`
	DatabaseID  string        `yaml:"database_id"`
	BaseURL     string    `yaml:"base_url"`
	Version     string    `yaml:"version"`
	HTTPTimeout int       `yaml:"http_timeout_seconds"`
	MCP         MCPConfig `yaml:"mcp"`
}

// Validate validates the Notion configuration.
func (c *NotionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HTTPTimeout, validation.Min(0)),
	)
}

// Timeout returns the HTTP client timeout as a duration.
func (c *NotionConfig) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// ResolveEnv fills in the token and targets from the process
// environment. Called once at startup; the rest of the application
// never consults the environment for credentials. Precedence for the
// token: explicit config value, then NOTION_API_TOKEN, NOTION_API_KEY,
// NOTION_TOKEN, then the key file.
func (c *NotionConfig) ResolveEnv() error {
	if c.Token == "" {
		for _, name := range tokenEnvVars {
			if v := os.Getenv(name); v != "" {
				c.Token = v
				break
			}
		}
	}
	if c.Token == "" && c.KeyFile != "" {
		data, err := os.ReadFile(c.KeyFile)
		if err != nil {
			return fmt.Errorf("notion: read key file %s: %w", c.KeyFile, err)
		}
		c.Token = strings.TrimSpace(string(data))
	}
	if c.PageID == "" {
		c.PageID = os.Getenv("NOTION_PAGE_ID")
	}
	if c.DatabaseID == "" {
		c.DatabaseID = os.Getenv("NOTION_DATABASE_ID")
	}
	return nil
}

// GitConfig holds the repository the session journal lives in. An
// empty RepoPath disables the commit step.
type GitConfig struct {
	RepoPath    string `yaml:"repo_path"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// SessionConfig holds session-close behaviour.
type SessionConfig struct {
	Project      string `yaml:"project"`
	LegacyScript string `yaml:"legacy_script"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Journal: JournalConfig{
			Path: "./journal",
		},
		SQLite: SQLiteConfig{
			Path: "./dagaz.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Notion: NotionConfig{
			BaseURL:     "https://api.notion.com",
			Version:     "2022-06-28",
			HTTPTimeout: 30,
		},
	}
}
