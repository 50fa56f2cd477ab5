package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/filledstacks/folio"
)

var flagWatch bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site into the output directory",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "rebuild when content or config changes")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := folio.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	b := folio.NewBuilder(cfg, logger, folio.NewMetrics(prometheus.NewRegistry()))

	ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := b.Build(ctx); err != nil {
		if !flagWatch {
			return err
		}
		logger.Errorf("build failed: %v", err)
	}
	if !flagWatch {
		return nil
	}
	configPath := ""
	if _, err := os.Stat(flagConfig); err == nil {
		configPath = flagConfig
	}
	return b.Watch(ctx, configPath, loadConfig)
}

func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
