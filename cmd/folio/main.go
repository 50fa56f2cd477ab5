package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filledstacks/folio"
)

// version is set at build time via ldflags.
var version = "dev"

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Localized static blog engine",
	Long: `folio turns a tree of markdown posts into a localized static blog:
post pages, paginated indexes, RSS feeds, OG cards and a sitemap per locale.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "site.yaml", "path to the site config file")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
	},
}

func loadConfig() (folio.SiteConfig, error) {
	return folio.LoadConfig(flagConfig)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
