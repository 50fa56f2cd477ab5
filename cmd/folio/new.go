package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/filledstacks/folio"
	"github.com/filledstacks/folio/scaffold"
)

var (
	flagDescription string
	flagTags        []string
)

var newCmd = &cobra.Command{
	Use:   "new <locale> <title>",
	Short: "Create a draft post",
	Example: `  folio new en "Getting started with folio"
  folio new es "Primeros pasos" --tags guia,folio`,
	Args: cobra.MinimumNArgs(2),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&flagDescription, "description", "d", "", "post description")
	newCmd.Flags().StringSliceVarP(&flagTags, "tags", "t", nil, "comma separated tags")
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	locale, title := args[0], strings.Join(args[1:], " ")
	path, err := newPostPath(cfg, locale, title)
	if err != nil {
		return err
	}
	desc := flagDescription
	if desc == "" {
		desc = title
	}
	err = createFile(path, func(w io.Writer) error {
		return scaffold.Post(w, scaffold.PostData{
			Title:       title,
			Description: desc,
			Author:      cfg.Author,
			Published:   time.Now().UTC().Format(time.RFC3339),
			Tags:        folio.FilterEmpty(flagTags),
		})
	})
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("post %s already exists", path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}

// createFile creates path, which must not exist yet, and fills it with
// render. On failure the partial file is removed.
func createFile(path string, render func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := render(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// newPostPath returns <contentDir>/<locale>/<slug>.md for a configured
// locale.
func newPostPath(cfg folio.SiteConfig, locale, title string) (string, error) {
	if !cfg.HasLocale(locale) {
		return "", fmt.Errorf("unknown locale %q (configured: %s)", locale, strings.Join(cfg.Locales, ", "))
	}
	slug := folio.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q has no usable characters for a file name", title)
	}
	return filepath.Join(cfg.ContentDir, locale, slug+".md"), nil
}
