package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/mixfield/seograph/internal/models"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Site    SiteConfig        `yaml:"site"`
	Content ContentConfig     `yaml:"content"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Quality QualityConfig     `yaml:"quality"`
	Sitemap SitemapConfig     `yaml:"sitemap"`
	Robots  RobotsConfig      `yaml:"robots"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Quality.Validate(); err != nil {
		return err
	}
	if err := c.Sitemap.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
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

// SiteConfig identifies the site all artifacts are generated for.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Title, validation.Required),
	)
}

// Meta converts the section to the generator-facing site metadata.
func (c *SiteConfig) Meta() models.SiteMeta {
	return models.SiteMeta{
		BaseURL:     c.BaseURL,
		Title:       c.Title,
		Description: c.Description,
		Language:    c.Language,
	}
}

// ContentConfig holds the path to the content document directory.
type ContentConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
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

// QualityConfig holds content-quality thresholds.
type QualityConfig struct {
	MinContentLength int  `yaml:"min_content_length"`
	AutoNoIndexEmpty bool `yaml:"auto_noindex_empty"`
}

// Validate validates the quality configuration.
func (c *QualityConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MinContentLength, validation.Required, validation.Min(1)),
	)
}

// Settings converts the section to engine-facing settings.
func (c *QualityConfig) Settings() models.QualitySettings {
	return models.QualitySettings{
		MinContentLength: c.MinContentLength,
		AutoNoIndexEmpty: c.AutoNoIndexEmpty,
	}
}

// SitemapConfig controls sitemap rendering and caching.
type SitemapConfig struct {
	ChangeFreq      string         `yaml:"changefreq"`
	CacheTTLMinutes int            `yaml:"cache_ttl_minutes"`
	Priorities      PriorityConfig `yaml:"priorities"`
}

// PriorityConfig holds per-type sitemap priorities.
type PriorityConfig struct {
	Home         float64 `yaml:"home"`
	Post         float64 `yaml:"post"`
	Hub          float64 `yaml:"hub"`
	Pillar       float64 `yaml:"pillar"`
	Programmatic float64 `yaml:"programmatic"`
	Resource     float64 `yaml:"resource"`
	Author       float64 `yaml:"author"`
}

// Validate validates the sitemap configuration.
func (c *SitemapConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.ChangeFreq, validation.Required,
			validation.In("always", "hourly", "daily", "weekly", "monthly", "yearly", "never")),
		validation.Field(&c.CacheTTLMinutes, validation.Min(0)),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.Priorities,
		validation.Field(&c.Priorities.Home, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.Priorities.Post, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.Priorities.Hub, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.Priorities.Pillar, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.Priorities.Programmatic, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.Priorities.Resource, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.Priorities.Author, validation.Min(0.0), validation.Max(1.0)),
	)
}

// Settings converts the section to generator-facing settings.
func (c *SitemapConfig) Settings() models.SitemapSettings {
	return models.SitemapSettings{
		ChangeFreq: c.ChangeFreq,
		CacheTTL:   time.Duration(c.CacheTTLMinutes) * time.Minute,
		Priorities: models.SitemapPriorities{
			Home:         c.Priorities.Home,
			Post:         c.Priorities.Post,
			Hub:          c.Priorities.Hub,
			Pillar:       c.Priorities.Pillar,
			Programmatic: c.Priorities.Programmatic,
			Resource:     c.Priorities.Resource,
			Author:       c.Priorities.Author,
		},
	}
}

// RobotsConfig holds the optional custom robots.txt body. When set it
// replaces the default policy verbatim.
type RobotsConfig struct {
	CustomText string `yaml:"custom_text"`
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

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Site: SiteConfig{
			BaseURL:  "http://localhost:8080",
			Title:    "Seograph",
			Language: "en",
		},
		Content: ContentConfig{
			Path: "./content",
		},
		SQLite: SQLiteConfig{
			Path: "./seograph.db",
		},
		Quality: QualityConfig{
			MinContentLength: 300,
			AutoNoIndexEmpty: true,
		},
		Sitemap: SitemapConfig{
			ChangeFreq:      "weekly",
			CacheTTLMinutes: 60,
			Priorities: PriorityConfig{
				Home:         1.0,
				Post:         0.8,
				Hub:          0.9,
				Pillar:       0.9,
				Programmatic: 0.6,
				Resource:     0.7,
				Author:       0.5,
			},
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
