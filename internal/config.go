package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Site    SiteConfig        `yaml:"site"`
	Auth    AuthConfig        `yaml:"auth"`
	Email   EmailConfig       `yaml:"email"`
	Metrics MetricsConfig     `yaml:"metrics"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Email.Validate(); err != nil {
		return err
	}
	return c.Metrics.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
	// SplashDelayMS is the fixed startup phase in milliseconds during
	// which the readiness probe reports unavailable.
	SplashDelayMS int `yaml:"splash_delay_ms"`
}

// SplashDelay returns the startup phase as a duration.
func (c *ApplicationConfig) SplashDelay() time.Duration {
	return time.Duration(c.SplashDelayMS) * time.Millisecond
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.SplashDelayMS, validation.Min(0)),
	); err != nil {
		return err
	}
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

// ContentConfig locates the content and translation files on disk.
type ContentConfig struct {
	Path        string `yaml:"path"`
	LocalesPath string `yaml:"locales_path"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.LocalesPath, validation.Required),
	)
}

// SQLiteConfig holds the durable key/value store location.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SiteConfig holds public site metadata.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	SitemapPath string `yaml:"sitemap_path"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	if c.SitemapPath == "" {
		c.SitemapPath = "sitemap.xml"
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
	)
}

// AuthConfig holds authentication configuration for the admin endpoints.
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

// EmailConfig holds the transactional email service credentials. All
// three credentials must be set together; leaving them all empty runs
// the contact form against the public endpoint with no account, which
// the provider rejects at send time.
type EmailConfig struct {
	Endpoint   string `yaml:"endpoint"`
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
	PublicKey  string `yaml:"public_key"`
}

// Validate validates the email configuration.
func (c *EmailConfig) Validate() error {
	some := c.ServiceID != "" || c.TemplateID != "" || c.PublicKey != ""
	all := c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
	if some && !all {
		return fmt.Errorf("email: service_id, template_id and public_key must be set together")
	}
	return nil
}

// MetricsConfig holds the contribution calendar and visit counter setup.
type MetricsConfig struct {
	ContributionsBase string `yaml:"contributions_base"`
	GithubUser        string `yaml:"github_user"`
	CounterBase       string `yaml:"counter_base"`
	CounterNamespace  string `yaml:"counter_namespace"`
	CounterKey        string `yaml:"counter_key"`
}

// Validate validates the metrics configuration.
func (c *MetricsConfig) Validate() error {
	if c.CounterNamespace == "" {
		c.CounterNamespace = "folio"
	}
	if c.CounterKey == "" {
		c.CounterKey = "visits"
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.GithubUser, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
			SplashDelayMS: 2500,
		},
		Content: ContentConfig{
			Path:        "./content",
			LocalesPath: "./locales",
		},
		SQLite: SQLiteConfig{
			Path: "./folio.db",
		},
		Site: SiteConfig{
			BaseURL:     "http://localhost:8080",
			SitemapPath: "sitemap.xml",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Metrics: MetricsConfig{
			GithubUser:       "kakeru13468",
			CounterNamespace: "folio",
			CounterKey:       "visits",
		},
	}
}
