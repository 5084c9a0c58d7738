package main

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"tech-blog/cmd/internal/app"
	"tech-blog/config"
	"tech-blog/internal/logger"
)

// appProvider builds the wired application on first use.
type appProvider func(cmd *cobra.Command) (*app.App, error)

// NewRootCmd builds the CLI. When provide is nil the app is built from the
// --config file (or config.yaml found from the working directory).
func NewRootCmd(version string, provide appProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "blog",
		Short:         "Browse and search the tech blog corpus",
		Long:          `Load the MDX post corpus and query it: list, filter, rank related posts and run weighted search.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)

	if provide == nil {
		provide = configProvider()
	}
	addSubcommands(rootCmd, provide)
	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to config.yaml")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
}

func addSubcommands(root *cobra.Command, provide appProvider) {
	root.AddCommand(
		NewSearchCmd(provide),
		NewPostsCmd(provide),
		NewPostCmd(provide),
		NewRelatedCmd(provide),
		NewFeaturedCmd(provide),
		NewPopularCmd(provide),
		NewTagsCmd(provide),
		NewCategoriesCmd(provide),
		NewWatchCmd(provide),
	)
}

func configProvider() appProvider {
	var (
		once sync.Once
		a    *app.App
		err  error
	)
	return func(cmd *cobra.Command) (*app.App, error) {
		once.Do(func() {
			var cfg config.AppConfig
			cfg, err = loadConfig(cmd)
			if err != nil {
				return
			}
			logger.Init(cfg.Logging.Level)
			a, err = app.New(contextOf(cmd), cfg)
		})
		return a, err
	}
}

func loadConfig(cmd *cobra.Command) (config.AppConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if config.GetBasePath() == "" {
			return config.AppConfig{}, errors.New("config.yaml not found; pass --config")
		}
		return config.GetConfig(), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return config.AppConfig{}, err
	}
	c, err := config.Load(abs)
	if err != nil {
		return config.AppConfig{}, err
	}
	return *c, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func wantJSON(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
