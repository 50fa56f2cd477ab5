package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/filledstacks/folio/scaffold"
)

var (
	flagTitle   string
	flagWebsite string
	flagAuthor  string
	flagLocale  string
)

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Create a new folio site",
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&flagTitle, "title", "", "site title (default derived from dir)")
	initCmd.Flags().StringVar(&flagWebsite, "url", "http://localhost:3000", "canonical site URL")
	initCmd.Flags().StringVar(&flagAuthor, "author", "", "default post author")
	initCmd.Flags().StringVar(&flagLocale, "locale", "en", "default locale")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := args[0]
	name := flagTitle
	if name == "" {
		name = toTitle(filepath.Base(dir))
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Creating new folio site: %s\n\n", dir)

	files, err := scaffold.Site(dir, scaffold.SiteData{
		SiteName:    name,
		Description: "Posts from " + name,
		Website:     flagWebsite,
		Author:      flagAuthor,
		Locale:      flagLocale,
		Published:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(out, "  created %s\n", filepath.Join(dir, f))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  folio serve")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.Und).String(s)
}
