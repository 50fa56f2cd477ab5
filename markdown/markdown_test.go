package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, md))
	return buf.String()
}

func TestRenderMarkdownHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", `<h1 id="heading-1">Heading 1</h1>`},
		{"## Heading 2", `<h2 id="heading-2">Heading 2</h2>`},
		{"### Heading 3", `<h3 id="heading-3">Heading 3</h3>`},
	}
	for _, tt := range tests {
		got := strings.TrimSpace(render(t, tt.input))
		assert.Equal(t, tt.expected, got, "RenderMarkdown(%q)", tt.input)
	}
}

func TestRenderMarkdownCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```go\nfmt.Println(\"hello\")\n```")
	assert.Contains(t, got, `class="language-go"`)
	assert.Contains(t, got, "fmt.Println")
}

func TestRenderMarkdownGFMTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	assert.Contains(t, got, "<table>")
	assert.Contains(t, got, "<td>1</td>")
}

func TestRenderMarkdownTableOfContents(t *testing.T) {
	md := "# Post\n\n## Table of contents\n\n## First Step\n\ntext\n\n### Detail\n\n## Second Step\n"
	got := render(t, md)

	assert.Contains(t, got, `<a href="#first-step">First Step</a>`)
	assert.Contains(t, got, `<a href="#detail">Detail</a>`)
	assert.Contains(t, got, `<a href="#second-step">Second Step</a>`)

	tocAt := strings.Index(got, `id="table-of-contents"`)
	listAt := strings.Index(got, `<ul>`)
	firstAt := strings.Index(got, `<h2 id="first-step">`)
	require.True(t, tocAt >= 0 && listAt > tocAt && firstAt > listAt, "toc list must sit between its heading and the first section: %s", got)
}

func TestRenderMarkdownWithoutTOCHeadingAddsNoList(t *testing.T) {
	got := render(t, "## One\n\n## Two\n")
	assert.NotContains(t, got, "<ul>")
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown("**bold**").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<strong>bold</strong>")
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"emphasis", "Some **bold** and *italic* text", "Some bold and italic text"},
		{"paragraphs", "First para.\n\nSecond para.", "First para. Second para."},
		{"soft break", "line one\nline two", "line one line two"},
		{"link", "see [the docs](https://example.com) now", "see the docs now"},
		{"heading and list", "# Title\n\n- one\n- two", "Title one two"},
		{"code block", "intro\n\n```go\nx := 1\n```", "intro x := 1"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.input))
		})
	}
}

func TestHeadings(t *testing.T) {
	got := Headings("# Intro\n\ntext\n\n## Getting Started\n")
	require.Len(t, got, 2)
	assert.Equal(t, Heading{Level: 1, Text: "Intro", ID: "intro"}, got[0])
	assert.Equal(t, Heading{Level: 2, Text: "Getting Started", ID: "getting-started"}, got[1])
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com", "https://example.com"},
		{"/og/post.png", "/og/post.png"},
		{"mailto:a@example.com", "mailto:a@example.com"},
		{"javascript:alert(1)", ""},
		{"relative/path", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SafeURL(tt.input), "SafeURL(%q)", tt.input)
	}
}
