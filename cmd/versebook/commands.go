package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"versebook/internal/config"
	"versebook/internal/scaffold"
	"versebook/internal/server"
)

func newGenCmd(app *appConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "Generate the site from poems/ into public/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runFullBuild(cmd.Context(), true)
		},
	}
}

func newServeCmd(app *appConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local preview server that rebuilds on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run(cmd.Context(), app.runFullBuild, server.Options{
				Port:       app.port,
				OutputDir:  outputDir,
				WatchPaths: []string{poemsDir, templateDir, staticDir, app.configPath},
				Logger:     app.logger,
			})
		},
	}
	cmd.Flags().IntVarP(&app.port, "port", "p", 1313, "port for the preview server")
	return cmd
}

func newNewCmd(app *appConfig) *cobra.Command {
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new site or poem",
	}

	newCmd.AddCommand(&cobra.Command{
		Use:   "site <dir>",
		Short: "Create a new site scaffold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := scaffold.CreateNewSite(args[0])
			if err != nil {
				return err
			}
			app.logger.Info("Site scaffolded", zap.String("dir", args[0]), zap.Int("files", len(written)))
			fmt.Fprintf(cmd.OutOrStdout(), "You can now:\n  cd %s\n  versebook serve\n", args[0])
			return nil
		},
	})

	newCmd.AddCommand(&cobra.Command{
		Use:   "poem <book>[/<chapter>] <title...>",
		Short: "Create a new poem from the archetype",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.createPoem(args[0], strings.Join(args[1:], " "))
		},
	})
	return newCmd
}

func (app *appConfig) createPoem(target, title string) error {
	siteCfg, err := config.LoadSiteConfig(app.configPath)
	if err != nil {
		return err
	}
	path, err := scaffold.CreateNewPoem(poemsDir, archetypesDir, target, title, siteCfg.Author)
	if err != nil {
		return fmt.Errorf("could not create poem: %w", err)
	}
	app.logger.Info("Created poem", zap.String("path", filepath.ToSlash(path)))
	return nil
}
