package views

import "time"

// Translate formats a UI message key in the page's locale.
type Translate func(key string, args ...interface{}) string

// UI message keys. The English text doubles as the key.
const (
	MsgMinutes      = "%d min read"
	MsgWords        = "%s words"
	MsgPosts        = "Posts"
	MsgPageOf       = "Page %d of %d"
	MsgPrev         = "Previous"
	MsgNext         = "Next"
	MsgPublished    = "Published"
	MsgUpdated      = "Updated"
	MsgNotFound     = "Page not found"
	MsgServerError  = "Something went wrong"
	MsgBackHome     = "Go back home"
	MsgNoPosts      = "No posts yet."
	MsgFeaturedPost = "Featured"
)

// Site carries the site-wide values every page needs, already localized.
type Site struct {
	Title       string
	Description string
	URL         string
	Locale      string
	HomePath    string
	FeedPath    string
	Socials     []Social
	Alternates  []Alternate
	T           Translate
}

// Social is one active social link.
type Social struct {
	Name      string
	Href      string
	LinkTitle string
}

// Alternate points at the same page in another locale.
type Alternate struct {
	Locale string
	Path   string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	OGImage     string
	OGVideo     string
	JSONLD      string
}

// PostCard is the listing view of a post.
type PostCard struct {
	Title       string
	Description string
	Path        string
	Published   time.Time
	Updated     *time.Time
	Minutes     int
	Featured    bool
	Tags        []string
}

// Post is a full post page.
type Post struct {
	PostCard
	Author string
	Words  int
	Body   string
}

// Pager links an index page to its neighbours.
type Pager struct {
	Number   int
	Total    int
	PrevPath string
	NextPath string
}
