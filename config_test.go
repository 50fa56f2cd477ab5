package folio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "site.yaml", `
website: https://blog.example.com
title: Example
author: Jane Doe
postPerPage: 4
defaultLocale: en
locales: [en, es]
socials:
  - name: Github
    href: https://github.com/example
    linkTitle: Example on Github
    active: true
  - name: Mail
    href: ""
    linkTitle: Mail us
    active: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com", cfg.Website)
	assert.Equal(t, 4, cfg.PostPerPage)
	assert.Equal(t, []string{"en", "es"}, cfg.Locales)
	assert.Equal(t, defaultContentDir, cfg.ContentDir)
	assert.Equal(t, defaultAddr, cfg.Addr)
	require.Len(t, cfg.ActiveSocials(), 1)
	assert.Equal(t, "Github", cfg.ActiveSocials()[0].Name)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "site.yaml", "website: https://blog.example.com\ntitle: Example\n")
	t.Setenv("FOLIO_SITE_TITLE", "From Env")
	t.Setenv("FOLIO_LOCALES", "en, es ,")
	t.Setenv("FOLIO_POST_PER_PAGE", "7")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Title)
	assert.Equal(t, []string{"en", "es"}, cfg.Locales)
	assert.Equal(t, 7, cfg.PostPerPage)

	t.Setenv("FOLIO_POST_PER_PAGE", "many")
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "FOLIO_POST_PER_PAGE")
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultTitle, cfg.Title)
	assert.Equal(t, []string{"en"}, cfg.Locales)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SiteConfig)
		wantErr string
	}{
		{"valid", func(*SiteConfig) {}, ""},
		{"relative website", func(c *SiteConfig) { c.Website = "/blog" }, "absolute URL"},
		{"bad locale", func(c *SiteConfig) { c.Locales = []string{"en", "xx-!!"} }, "locale"},
		{"duplicate locale", func(c *SiteConfig) { c.Locales = []string{"en", "en"} }, "twice"},
		{"default not listed", func(c *SiteConfig) { c.DefaultLocale = "fr" }, "default locale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
