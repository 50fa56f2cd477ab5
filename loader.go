package folio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// CollectionLoader supplies validated post entries. An empty localeFilter
// returns every locale.
type CollectionLoader interface {
	LoadCollection(localeFilter string) ([]PostEntry, error)
}

// Loader reads markdown posts from a filesystem. Posts live at
// <Root>/<locale>/<slug>.md; the entry ID is the path below Root without the
// extension.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader returns a Loader over fsys rooted at root.
func NewLoader(fsys fs.FS, root string) *Loader {
	return &Loader{FS: fsys, Root: root}
}

// LoadCollection parses every post below Root. The first malformed entry
// fails the whole load with a *SchemaValidationError.
func (l *Loader) LoadCollection(localeFilter string) ([]PostEntry, error) {
	root := l.Root
	if root == "" {
		root = "."
	}
	var entries []PostEntry
	err := fs.WalkDir(l.FS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if ext != ".md" && ext != ".mdx" {
			return nil
		}
		rel := p
		if root != "." {
			rel = strings.TrimPrefix(p, root+"/")
		}
		id := strings.TrimSuffix(rel, ext)
		if localeFilter != "" && !strings.HasPrefix(id, localeFilter+"/") {
			return nil
		}
		src, err := fs.ReadFile(l.FS, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		entry, err := ParseEntry(id, src)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Frontmatter keys accepted in a post. Anything else is rejected.
var frontmatterKeys = map[string]struct{}{
	"author": {}, "published": {}, "updated": {}, "title": {}, "postSlug": {},
	"featured": {}, "draft": {}, "tags": {}, "categories": {}, "ogImage": {},
	"ogVideo": {}, "description": {}, "lang": {}, "minutes": {},
}

type rawFrontmatter struct {
	Author      *string   `yaml:"author"`
	Published   *Date     `yaml:"published"`
	Updated     *Date     `yaml:"updated"`
	Title       *string   `yaml:"title"`
	PostSlug    *string   `yaml:"postSlug"`
	Featured    *bool     `yaml:"featured"`
	Draft       *bool     `yaml:"draft"`
	Tags        *[]string `yaml:"tags"`
	Categories  *[]string `yaml:"categories"`
	OGImage     *string   `yaml:"ogImage"`
	OGVideo     *string   `yaml:"ogVideo"`
	Description *string   `yaml:"description"`
	Lang        *string   `yaml:"lang"`
	Minutes     *string   `yaml:"minutes"`
}

// ParseEntry splits src into frontmatter and body, validates the
// frontmatter against the post schema, applies defaults and annotates the
// reading time.
func ParseEntry(id string, src []byte) (PostEntry, error) {
	invalid := func(field, format string, args ...interface{}) error {
		return &SchemaValidationError{EntryID: id, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	fm, body, err := splitFrontmatter(src)
	if err != nil {
		return PostEntry{}, invalid("", "%v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(fm, &doc); err != nil {
		return PostEntry{}, invalid("", "%v", err)
	}
	if len(doc.Content) == 0 {
		return PostEntry{}, invalid("title", "required")
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return PostEntry{}, invalid("", "frontmatter must be a mapping")
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		if _, ok := frontmatterKeys[key]; !ok {
			return PostEntry{}, invalid(key, "unrecognized key")
		}
	}

	var raw rawFrontmatter
	if err := mapping.Decode(&raw); err != nil {
		var de *DateError
		if errors.As(err, &de) {
			return PostEntry{}, invalid(de.field(mapping), "%v", de)
		}
		return PostEntry{}, invalid("", "%v", err)
	}

	switch {
	case raw.Title == nil:
		return PostEntry{}, invalid("title", "required")
	case raw.Description == nil:
		return PostEntry{}, invalid("description", "required")
	case raw.Published == nil:
		return PostEntry{}, invalid("published", "required")
	}
	if raw.OGVideo != nil {
		u, err := url.Parse(*raw.OGVideo)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return PostEntry{}, invalid("ogVideo", "invalid url %q", *raw.OGVideo)
		}
	}

	entry := PostEntry{
		ID:   id,
		Body: string(body),
		Frontmatter: Frontmatter{
			Title:       *raw.Title,
			Description: *raw.Description,
			Published:   raw.Published.Time,
			Author:      deref(raw.Author),
			PostSlug:    deref(raw.PostSlug),
			Featured:    raw.Featured != nil && *raw.Featured,
			Draft:       raw.Draft != nil && *raw.Draft,
			OGImage:     deref(raw.OGImage),
			OGVideo:     deref(raw.OGVideo),
			Lang:        deref(raw.Lang),
			Tags:        DefaultTags,
			Categories:  DefaultCategories,
		},
	}
	if raw.Updated != nil {
		t := raw.Updated.Time
		entry.Frontmatter.Updated = &t
	}
	if raw.Tags != nil {
		entry.Frontmatter.Tags = *raw.Tags
	}
	if raw.Categories != nil {
		entry.Frontmatter.Categories = *raw.Categories
	}
	AnnotateReadingTime(&entry)
	return entry, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ErrMissingClosingDelimiter indicates the document started with a
// frontmatter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// splitFrontmatter separates `---` delimited YAML frontmatter from the
// markdown body. A document without frontmatter yields an empty block.
func splitFrontmatter(content []byte) (frontmatter, body []byte, err error) {
	nl := []byte("\n")
	if bytes.Contains(content, []byte("\r\n")) {
		nl = []byte("\r\n")
	}
	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}
	closeSeq := append(append(append([]byte{}, nl...), "---"...), nl...)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		closeEOF := append(append([]byte{}, nl...), "---"...)
		if bytes.HasSuffix(rest, closeEOF) {
			return rest[:len(rest)-len(closeEOF)], nil, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}
	return rest[:idx], rest[idx+len(closeSeq):], nil
}

// Date is a frontmatter date. It accepts YAML timestamps and the common
// date-only and date-time layouts.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return &DateError{Line: value.Line, Value: value.Value}
	}
	v := strings.TrimSpace(value.Value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			d.Time = t
			return nil
		}
	}
	return &DateError{Line: value.Line, Value: v}
}

// DateError reports a frontmatter value that is not a valid date.
type DateError struct {
	Line  int
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("line %d: %q is not a valid date", e.Line, e.Value)
}

// field finds the key whose value sits on the error's line.
func (e *DateError) field(mapping *yaml.Node) string {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i+1].Line == e.Line {
			return mapping.Content[i].Value
		}
	}
	return ""
}
