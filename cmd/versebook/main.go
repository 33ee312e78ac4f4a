// cmd/versebook/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"versebook/internal/builder"
	"versebook/internal/config"
	"versebook/internal/logging"
)

const (
	poemsDir      = "poems"
	templateDir   = "templates"
	staticDir     = "static"
	outputDir     = "public"
	archetypesDir = "archetypes"
	configFile    = "site.yaml"
)

type appConfig struct {
	debug      bool
	unsafe     bool
	port       int
	configPath string
	logger     *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &appConfig{}
	rootCmd := &cobra.Command{
		Use:   "versebook",
		Short: "versebook - a quiet static site generator for poems",
		Long: `versebook turns a directory of plain-text poems into a browsable website.

Each directory under poems/ is a book; a book may hold poems directly and
one level of chapter directories. Poems start with optional Title:, Author:
and Type: lines. Works typed as theatre get dialogue formatting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(app.debug)
			if err != nil {
				return err
			}
			app.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&app.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&app.unsafe, "unsafe", false, "disable HTML sanitization of markdown prefaces")
	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", configFile, "site configuration file")

	rootCmd.AddCommand(newGenCmd(app), newServeCmd(app), newNewCmd(app))
	return rootCmd
}

func (app *appConfig) buildOptions(clean bool) builder.BuildOptions {
	return builder.BuildOptions{
		CleanDestination: clean,
		Unsafe:           app.unsafe,
		Logger:           app.logger,
	}
}

// runFullBuild loads the config and templates, then builds the site. The
// template is loaded first so a broken theme never leaves partial output.
func (app *appConfig) runFullBuild(ctx context.Context, clean bool) error {
	siteCfg, err := config.LoadSiteConfig(app.configPath)
	if err != nil {
		return err
	}

	tmpl, err := builder.LoadTemplates(templateDir, siteCfg.Template)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	pageCount, err := builder.BuildSite(ctx, outputDir, poemsDir, staticDir, siteCfg, tmpl, app.buildOptions(clean))
	if err != nil {
		return fmt.Errorf("site generation failed: %w", err)
	}
	app.logger.Info("Build successful", zap.Int("pages", pageCount), zap.String("output", outputDir))
	return nil
}
