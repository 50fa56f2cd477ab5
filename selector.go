package folio

import (
	"sort"
	"strings"
)

// SelectPosts returns the published posts of locale, newest first.
//
// An entry is kept when its ID starts with "<locale>/" and it is not a
// draft. Publish dates are compared at whole-second resolution; entries
// published in the same second are ordered by ascending ID. The input slice
// is not modified.
func SelectPosts(entries []PostEntry, locale string) []PostEntry {
	prefix := locale + "/"
	selected := make([]PostEntry, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.ID, prefix) && !e.Frontmatter.Draft {
			selected = append(selected, e)
		}
	}
	sortByPublished(selected)
	return selected
}

// SortPosts drops drafts and sorts the rest newest first without looking at
// locales.
func SortPosts(entries []PostEntry) []PostEntry {
	out := make([]PostEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Frontmatter.Draft {
			out = append(out, e)
		}
	}
	sortByPublished(out)
	return out
}

func sortByPublished(posts []PostEntry) {
	sort.SliceStable(posts, func(i, j int) bool {
		a := posts[i].Frontmatter.Published.Unix()
		b := posts[j].Frontmatter.Published.Unix()
		if a != b {
			return a > b
		}
		return posts[i].ID < posts[j].ID
	})
}

// Page is one page of a paginated post listing. Number is 1-based.
type Page struct {
	Posts      []PostEntry
	Number     int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Paginate slices posts into pages of perPage and returns page number n.
// Out-of-range page numbers yield an empty page carrying the total.
func Paginate(posts []PostEntry, perPage, n int) Page {
	if perPage <= 0 {
		perPage = defaultPostPerPage
	}
	total := (len(posts) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}
	page := Page{Number: n, TotalPages: total}
	if n < 1 || n > total {
		return page
	}
	start := (n - 1) * perPage
	end := start + perPage
	if end > len(posts) {
		end = len(posts)
	}
	page.Posts = posts[start:end]
	return page
}
