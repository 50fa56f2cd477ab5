package folio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"Flutter 3.0: What's New?", "flutter-30-whats-new"},
		{"  Trim me  ", "trim-me"},
		{"Cómo empezar con Go", "cómo-empezar-con-go"},
		{"snake_case and kebab-case", "snake_case-and-kebab-case"},
		{"Two  spaces", "two--spaces"},
		{"日本語のタイトル", "日本語のタイトル"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		got := Slugify(tt.input)
		if got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestPostSlug(t *testing.T) {
	assert.Equal(t, "hello-world", PostSlug(Frontmatter{Title: "Hello World"}))
	assert.Equal(t, "custom-slug", PostSlug(Frontmatter{Title: "Hello World", PostSlug: "Custom Slug"}))
	assert.Equal(t, "", PostSlug(Frontmatter{}))
}

func TestFoldDiacritics(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Cómo", "Como"},
		{"naïve café", "naive cafe"},
		{"Ærøskøbing", "Ærøskøbing"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FoldDiacritics(tt.input), tt.input)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", []string{"/posts/hello/"}, "https://example.com/posts/hello/"},
		{"https://example.com", []string{"/posts/hello"}, "https://example.com/posts/hello/"},
		{"https://example.com/", []string{"/rss.xml"}, "https://example.com/rss.xml"},
		{"https://example.com/blog", []string{"/es/"}, "https://example.com/blog/es/"},
		{"https://example.com", []string{"/"}, "https://example.com/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, BuildURL(tt.base, tt.segments...))
	}
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://example.com/og/card.png", AbsoluteURL("https://example.com", "/og/card.png"))
	assert.Equal(t, "https://cdn.example.org/a.png", AbsoluteURL("https://example.com", "https://cdn.example.org/a.png"))
}

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, []string{"en", "es"}, FilterEmpty([]string{"en", " ", "", " es "}))
	assert.Nil(t, FilterEmpty([]string{""}))
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := testConfig()
	p := entry("es/hola", "2024-02-03", false)
	p.Frontmatter.Title = "Hola Mundo"
	p.Frontmatter.Tags = []string{"go", "web"}

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(BlogPostingJsonLD(p, cfg)), &got))
	assert.Equal(t, "BlogPosting", got["@type"])
	assert.Equal(t, "Hola Mundo", got["headline"])
	assert.Equal(t, "https://example.com/es/posts/hola-mundo/", got["url"])
	assert.Equal(t, "go, web", got["keywords"])
	assert.Equal(t, map[string]interface{}{"@type": "Person", "name": "Site Author"}, got["author"])
	assert.NotContains(t, got, "dateModified")
}

func TestWebsiteJsonLD(t *testing.T) {
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(WebsiteJsonLD(testConfig(), "es")), &got))
	assert.Equal(t, "WebSite", got["@type"])
	assert.Equal(t, "https://example.com/es/", got["url"])
	assert.Equal(t, "es", got["inLanguage"])
}
