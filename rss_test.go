package folio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRSSPreservesOrder(t *testing.T) {
	cfg := testConfig()
	entries := []PostEntry{
		entry("es/a", "2023-01-01", false),
		entry("es/b", "2023-06-01", false),
		entry("es/c", "2023-03-01", false),
		entry("en/d", "2023-09-01", false),
	}
	posts := SelectPosts(entries, "es")

	feed, err := ProjectRSS(cfg, posts, "es")
	require.NoError(t, err)
	require.Len(t, feed.Items, len(posts))
	for i, item := range feed.Items {
		assert.Equal(t, posts[i].Frontmatter.Title, item.Title)
	}
	assert.Equal(t, "https://example.com/es/posts/post-esb/", feed.Items[0].Link)
	assert.Equal(t, "Thu, 01 Jun 2023 00:00:00 +0000", feed.Items[0].PubDate)
	assert.Equal(t, "es", feed.Language)
}

func TestRenderRSSRoundTrip(t *testing.T) {
	cfg := testConfig()
	posts := SelectPosts([]PostEntry{
		entry("en/first", "2023-01-01", false),
		entry("en/second", "2023-02-01", false),
	}, "en")
	feed, err := ProjectRSS(cfg, posts, "en")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, feed.WriteXML(&buf))

	parsed, err := gofeed.NewParser().Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, "rss", parsed.FeedType)
	assert.Equal(t, "Example Blog", parsed.Title)
	assert.Equal(t, "Posts about things", parsed.Description)
	assert.Equal(t, "https://example.com", parsed.Link)
	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "Post en/second", parsed.Items[0].Title)
	assert.Equal(t, "https://example.com/posts/post-ensecond/", parsed.Items[0].Link)
	assert.Equal(t, "About en/second", parsed.Items[0].Description)
	require.NotNil(t, parsed.Items[0].PublishedParsed)
	assert.True(t, parsed.Items[0].PublishedParsed.Equal(date("2023-02-01")))
	assert.Equal(t, "Post en/first", parsed.Items[1].Title)
}

func TestRenderRSSEscapes(t *testing.T) {
	feed := Feed{
		Title: "A & B",
		Site:  "https://example.com",
		Items: []RSSItem{{Title: "<script>", Link: "https://example.com/x/"}},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderRSS(&buf, feed))
	assert.Contains(t, buf.String(), "<title>A &amp; B</title>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
	assert.NotContains(t, buf.String(), "<language>")
}

func TestProjectRSSSkipsMissingTitle(t *testing.T) {
	cfg := testConfig()
	broken := entry("en/broken", "2023-05-01", false)
	broken.Frontmatter.Title = ""
	punct := entry("en/punct", "2023-04-01", false)
	punct.Frontmatter.Title = "???"
	badSlug := entry("en/badslug", "2023-03-01", false)
	badSlug.Frontmatter.PostSlug = "!!"
	posts := []PostEntry{entry("en/ok", "2023-06-01", false), broken, punct, badSlug}

	feed, err := ProjectRSS(cfg, posts, "en")
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "Post en/ok", feed.Items[0].Title)

	var pe *ProjectionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "rss", pe.Projection)
	require.Len(t, pe.Errs, 3)

	var mfe *MissingFieldError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "en/broken", mfe.EntryID)
	assert.Equal(t, "title", mfe.Field)

	fields := make([]string, len(pe.Errs))
	for i, e := range pe.Errs {
		fields[i] = e.(*MissingFieldError).Field
	}
	assert.Equal(t, []string{"title", "title", "postSlug"}, fields)
}
