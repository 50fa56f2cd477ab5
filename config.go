package folio

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a folio site. It is loaded once at
// startup and passed by value; nothing mutates it afterwards.
type SiteConfig struct {
	Website     string       `yaml:"website"`     // Canonical URL (default "http://localhost:3000")
	Author      string       `yaml:"author"`      // Author name for JSON-LD and new posts
	Description string       `yaml:"description"` // Site description for RSS and meta tags
	Title       string       `yaml:"title"`       // Site title (default "Blog")
	OGImage     string       `yaml:"ogImage"`     // Site-wide fallback OG image
	PostPerPage int          `yaml:"postPerPage"` // Posts per index page (default 10)
	Socials     []SocialLink `yaml:"socials"`

	DefaultLocale string   `yaml:"defaultLocale"` // Locale served without a path prefix (default "en")
	Locales       []string `yaml:"locales"`       // All published locales (default [DefaultLocale])

	ContentDir string `yaml:"contentDir"` // Markdown root (default "content/blog")
	OutputDir  string `yaml:"outputDir"`  // Static build output (default "dist")
	Addr       string `yaml:"addr"`       // Preview server listen address (default ":3000")
	LogLevel   string `yaml:"logLevel"`   // debug, info, warn, error (default "info")
}

// SocialLink is one entry of the site's social link list. The list order is
// the display order.
type SocialLink struct {
	Name      string `yaml:"name"`
	Href      string `yaml:"href"` // empty means disabled
	LinkTitle string `yaml:"linkTitle"`
	Active    bool   `yaml:"active"`
}

const (
	defaultTitle       = "Blog"
	defaultWebsite     = "http://localhost:3000"
	defaultPostPerPage = 10
	defaultLocale      = "en"
	defaultContentDir  = "content/blog"
	defaultOutputDir   = "dist"
	defaultAddr        = ":3000"
	defaultLogLevel    = "info"
)

func (c *SiteConfig) setDefaults() {
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Website == "" {
		c.Website = defaultWebsite
	}
	if c.PostPerPage <= 0 {
		c.PostPerPage = defaultPostPerPage
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = defaultLocale
	}
	if len(c.Locales) == 0 {
		c.Locales = []string{c.DefaultLocale}
	}
	if c.ContentDir == "" {
		c.ContentDir = defaultContentDir
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

// Validate reports the first configuration problem found.
func (c SiteConfig) Validate() error {
	u, err := url.Parse(c.Website)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("website must be an absolute URL, got %q", c.Website)
	}
	seen := make(map[string]struct{}, len(c.Locales))
	for _, l := range c.Locales {
		if _, err := language.Parse(l); err != nil {
			return fmt.Errorf("locale %q: %w", l, err)
		}
		if strings.Contains(l, "/") {
			return fmt.Errorf("locale %q must not contain '/'", l)
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("locale %q listed twice", l)
		}
		seen[l] = struct{}{}
	}
	if !c.HasLocale(c.DefaultLocale) {
		return fmt.Errorf("default locale %q is not in locales %v", c.DefaultLocale, c.Locales)
	}
	return nil
}

// HasLocale reports whether locale is one of the configured locales.
func (c SiteConfig) HasLocale(locale string) bool {
	for _, l := range c.Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// ActiveSocials returns the enabled social links in display order.
func (c SiteConfig) ActiveSocials() []SocialLink {
	var out []SocialLink
	for _, s := range c.Socials {
		if s.Active && s.Href != "" {
			out = append(out, s)
		}
	}
	return out
}

// LoadConfig reads the YAML site file at path, applies FOLIO_* environment
// overrides (a .env file next to the working directory is honoured) and
// fills defaults. A missing file is not an error: the site then runs on
// environment variables and defaults alone.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *SiteConfig) applyEnv() error {
	c.Website = EnvOr("FOLIO_SITE_URL", c.Website)
	c.Title = EnvOr("FOLIO_SITE_TITLE", c.Title)
	c.Description = EnvOr("FOLIO_SITE_DESCRIPTION", c.Description)
	c.Author = EnvOr("FOLIO_SITE_AUTHOR", c.Author)
	c.ContentDir = EnvOr("FOLIO_CONTENT_DIR", c.ContentDir)
	c.OutputDir = EnvOr("FOLIO_OUTPUT_DIR", c.OutputDir)
	c.Addr = EnvOr("FOLIO_ADDR", c.Addr)
	c.LogLevel = EnvOr("FOLIO_LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("FOLIO_LOCALES"); v != "" {
		c.Locales = FilterEmpty(strings.Split(v, ","))
	}
	if v := os.Getenv("FOLIO_POST_PER_PAGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FOLIO_POST_PER_PAGE: %w", err)
		}
		c.PostPerPage = n
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithLoader replaces the filesystem content loader.
func WithLoader(l CollectionLoader) Option {
	return func(a *App) {
		a.loader = l
	}
}

// WithImageGenerator replaces the built-in OG card renderer.
func WithImageGenerator(g ImageGenerator) Option {
	return func(a *App) {
		a.images = g
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
