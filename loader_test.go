package folio

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloPost = `---
title: Hello World
description: The first post
published: 2024-01-15
tags: [go, web]
---

Hello there.
`

func TestParseEntryDefaults(t *testing.T) {
	e, err := ParseEntry("en/hello", []byte(`---
title: Minimal
description: Only required fields
published: 2024-01-15T10:30:00Z
---
One two three four.
`))
	require.NoError(t, err)
	fm := e.Frontmatter
	assert.Equal(t, "Minimal", fm.Title)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), fm.Published)
	assert.Equal(t, []string{"others"}, fm.Tags)
	assert.Equal(t, []string{"tutorial"}, fm.Categories)
	assert.False(t, fm.Draft)
	assert.False(t, fm.Featured)
	assert.Nil(t, fm.Updated)
	assert.Equal(t, 4, fm.Words)
	assert.Equal(t, 1, fm.Minutes)
	assert.Equal(t, "One two three four.\n", e.Body)
	assert.Equal(t, "en", e.Locale())
}

func TestParseEntryAllFields(t *testing.T) {
	e, err := ParseEntry("es/todo", []byte(`---
title: "Todo: completo"
description: Con todos los campos
published: 2024-02-01 09:00
updated: 2024-03-01
draft: true
featured: true
tags: []
categories: [guia]
author: Ana
postSlug: todo-completo
ogImage: /images/todo.png
ogVideo: https://video.example.com/todo.mp4
lang: es
---
`))
	require.NoError(t, err)
	fm := e.Frontmatter
	assert.Equal(t, "Todo: completo", fm.Title)
	assert.True(t, fm.Draft)
	assert.True(t, fm.Featured)
	assert.Empty(t, fm.Tags)
	assert.Equal(t, []string{"guia"}, fm.Categories)
	assert.Equal(t, "Ana", fm.Author)
	assert.Equal(t, "todo-completo", PostSlug(fm))
	assert.Equal(t, "/images/todo.png", fm.OGImage)
	require.NotNil(t, fm.Updated)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *fm.Updated)
	assert.Equal(t, *fm.Updated, fm.LastModified())
	assert.Equal(t, 0, fm.Words)
}

func TestParseEntrySchemaErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantField string
	}{
		{"missing title", "---\ndescription: d\npublished: 2024-01-01\n---\n", "title"},
		{"missing description", "---\ntitle: t\npublished: 2024-01-01\n---\n", "description"},
		{"missing published", "---\ntitle: t\ndescription: d\n---\n", "published"},
		{"unknown key", "---\ntitle: t\ndescription: d\npublished: 2024-01-01\nsummary: s\n---\n", "summary"},
		{"bad date", "---\ntitle: t\ndescription: d\npublished: yesterday\n---\n", "published"},
		{"bad updated", "---\ntitle: t\ndescription: d\npublished: 2024-01-01\nupdated: [1]\n---\n", "updated"},
		{"relative ogVideo", "---\ntitle: t\ndescription: d\npublished: 2024-01-01\nogVideo: /v.mp4\n---\n", "ogVideo"},
		{"no frontmatter", "just text\n", "title"},
		{"unclosed", "---\ntitle: t\n", ""},
		{"not a mapping", "---\n- a\n- b\n---\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEntry("en/bad", []byte(tt.src))
			var sve *SchemaValidationError
			require.True(t, errors.As(err, &sve), "got %v", err)
			assert.Equal(t, "en/bad", sve.EntryID)
			assert.Equal(t, tt.wantField, sve.Field)
		})
	}
}

func TestParseEntryCRLF(t *testing.T) {
	src := "---\r\ntitle: Windows\r\ndescription: CRLF\r\npublished: 2024-01-01\r\n---\r\nBody text\r\n"
	e, err := ParseEntry("en/crlf", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "Windows", e.Frontmatter.Title)
	assert.Equal(t, 2, e.Frontmatter.Words)
}

func TestLoadCollection(t *testing.T) {
	fsys := fstest.MapFS{
		"content/en/hello.md":      {Data: []byte(helloPost)},
		"content/en/second.mdx":    {Data: []byte(helloPost)},
		"content/es/hola.md":       {Data: []byte(helloPost)},
		"content/es/notes.txt":     {Data: []byte("ignored")},
		"content/en/nested/one.md": {Data: []byte(helloPost)},
	}
	l := NewLoader(fsys, "content")

	all, err := l.LoadCollection("")
	require.NoError(t, err)
	assert.Equal(t, []string{"en/hello", "en/nested/one", "en/second", "es/hola"}, ids(all))

	es, err := l.LoadCollection("es")
	require.NoError(t, err)
	assert.Equal(t, []string{"es/hola"}, ids(es))
	assert.Equal(t, []string{"go", "web"}, es[0].Frontmatter.Tags)
}

func TestLoadCollectionRootDot(t *testing.T) {
	fsys := fstest.MapFS{"en/hello.md": {Data: []byte(helloPost)}}
	all, err := NewLoader(fsys, ".").LoadCollection("en")
	require.NoError(t, err)
	assert.Equal(t, []string{"en/hello"}, ids(all))
}

func TestLoadCollectionFailsFast(t *testing.T) {
	fsys := fstest.MapFS{
		"en/good.md": {Data: []byte(helloPost)},
		"en/bad.md":  {Data: []byte("---\ntitle: t\nbogus: 1\n---\n")},
	}
	_, err := NewLoader(fsys, ".").LoadCollection("")
	var sve *SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "en/bad", sve.EntryID)
	assert.Equal(t, "bogus", sve.Field)
}
