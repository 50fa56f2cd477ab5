package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func testSite() Site {
	return Site{
		Title:    "Example & Co",
		URL:      "https://example.com",
		Locale:   "en",
		HomePath: "/",
		FeedPath: "/rss.xml",
		Socials: []Social{
			{Name: "Github", Href: "https://github.com/example", LinkTitle: "Example on Github"},
			{Name: "Evil", Href: "javascript:alert(1)", LinkTitle: "nope"},
		},
		Alternates: []Alternate{{Locale: "es", Path: "/es/"}},
	}
}

func TestLayout(t *testing.T) {
	meta := PageMeta{
		Title:       "Hello <World>",
		Description: `Quotes "here"`,
		URL:         "https://example.com/posts/hello/",
		OGType:      "article",
		OGImage:     "https://example.com/og/hello.png",
		JSONLD:      `{"@type":"BlogPosting"}`,
	}
	got := render(t, Layout(testSite(), meta, templ.Raw("<p>body</p>")))
	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, `<html lang="en">`)
	assert.Contains(t, got, "<title>Hello &lt;World&gt;</title>")
	assert.Contains(t, got, `content="Quotes &#34;here&#34;"`)
	assert.Contains(t, got, `<link rel="alternate" hreflang="es" href="/es/">`)
	assert.Contains(t, got, `<meta property="og:type" content="article">`)
	assert.Contains(t, got, `<meta name="twitter:card" content="summary_large_image">`)
	assert.NotContains(t, got, "og:video")
	assert.Contains(t, got, `<script type="application/ld+json">{"@type":"BlogPosting"}</script>`)
	assert.Contains(t, got, "<main>\n<p>body</p></main>")
	assert.Contains(t, got, "Example &amp; Co")
	assert.Contains(t, got, `href="https://github.com/example"`)
	assert.NotContains(t, got, "javascript:")
}

func TestPostPage(t *testing.T) {
	updated := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	post := Post{
		PostCard: PostCard{
			Title:     "My Post",
			Path:      "/posts/my-post/",
			Published: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Updated:   &updated,
			Minutes:   3,
			Featured:  true,
			Tags:      []string{"go", "web"},
		},
		Author: "Jane",
		Words:  12345,
		Body:   "## Section\n\nText with `code`.",
	}
	got := render(t, PostPage(testSite(), PageMeta{Title: "My Post"}, post))
	assert.Contains(t, got, "<h1>My Post</h1>")
	assert.Contains(t, got, `<time datetime="2024-01-15T00:00:00Z">Published 2024-01-15</time>`)
	assert.Contains(t, got, "Updated 2024-02-01")
	assert.Contains(t, got, `<span class="reading-time">3 min read</span>`)
	assert.Contains(t, got, "12,345 words")
	assert.Contains(t, got, `<span class="author">Jane</span>`)
	assert.Contains(t, got, "<li>#go</li><li>#web</li>")
	assert.Contains(t, got, `<h2 id="section">Section</h2>`)
	assert.Contains(t, got, "<code>code</code>")
	assert.Contains(t, got, `<span class="badge">Featured</span>`)
}

func TestIndexPage(t *testing.T) {
	posts := []PostCard{
		{Title: "First", Path: "/posts/first/", Description: "One", Minutes: 1},
		{Title: "Second", Path: "/posts/second/", Description: "Two", Minutes: 2},
	}
	got := render(t, IndexPage(testSite(), PageMeta{}, posts, Pager{Number: 2, Total: 3, PrevPath: "/", NextPath: "/page/3/"}))
	assert.Contains(t, got, `<a href="/posts/first/"><h2>First</h2></a>`)
	assert.Less(t, strings.Index(got, "First"), strings.Index(got, "Second"))
	assert.Contains(t, got, `<a rel="prev" href="/">Previous</a>`)
	assert.Contains(t, got, "<span>Page 2 of 3</span>")
	assert.Contains(t, got, `<a rel="next" href="/page/3/">Next</a>`)

	got = render(t, IndexPage(testSite(), PageMeta{}, posts, Pager{Number: 1, Total: 1}))
	assert.NotContains(t, got, "pagination")

	got = render(t, IndexPage(testSite(), PageMeta{}, nil, Pager{Number: 1, Total: 1}))
	assert.Contains(t, got, "No posts yet.")
}

func TestTranslatedPages(t *testing.T) {
	site := testSite()
	site.Locale = "es"
	site.T = func(key string, args ...interface{}) string {
		if key == MsgNotFound {
			return "Página no encontrada"
		}
		return key
	}
	got := render(t, NotFound(site))
	assert.Contains(t, got, "<h1>Página no encontrada</h1>")
	assert.Contains(t, got, "<title>Página no encontrada | Example &amp; Co</title>")
	assert.Contains(t, got, `<html lang="es">`)

	got = render(t, ServerError(testSite()))
	assert.Contains(t, got, "<h1>Something went wrong</h1>")
	assert.Contains(t, got, `<a href="/">Go back home</a>`)
}
