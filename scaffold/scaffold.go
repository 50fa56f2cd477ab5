// Package scaffold holds the embedded templates behind `folio init` and
// `folio new`.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

const (
	siteRoot = "templates/site"
	postTmpl = "templates/post.md.tmpl"

	// localeDir is replaced by SiteData.Locale in output paths.
	localeDir = "LOCALE"
)

var funcs = template.FuncMap{"quote": strconv.Quote}

// SiteData holds the template variables of a new site.
type SiteData struct {
	SiteName    string
	Description string
	Website     string
	Author      string
	Locale      string
	Published   string
}

// PostData holds the template variables of a new post.
type PostData struct {
	Title       string
	Description string
	Author      string
	Published   string
	Tags        []string
}

// Post writes a draft post with the given frontmatter to w.
func Post(w io.Writer, data PostData) error {
	tmpl, err := template.New(path.Base(postTmpl)).Funcs(funcs).ParseFS(Templates, postTmpl)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", postTmpl, err)
	}
	return tmpl.Execute(w, data)
}

// Site creates dir and renders the site skeleton into it. It returns the
// created files relative to dir. An existing dir is an error.
func Site(dir string, data SiteData) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	}

	var created []string
	err := fs.WalkDir(Templates, siteRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath := strings.TrimPrefix(strings.TrimPrefix(p, siteRoot), "/")
		relPath = strings.ReplaceAll(relPath, localeDir, data.Locale)
		relPath = strings.TrimSuffix(relPath, ".tmpl")
		if path.Base(relPath) == "dotenv" {
			relPath = path.Join(path.Dir(relPath), ".env.example")
		}
		outPath := filepath.Join(dir, filepath.FromSlash(relPath))

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		content, err := Templates.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		tmpl, err := template.New(path.Base(p)).Funcs(funcs).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", p, err)
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", p, err)
		}
		created = append(created, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
