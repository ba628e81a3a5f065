// Package app defines the command tree of the daily-trivia CLI.
package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourusername/daily-trivia/internal/config"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

var configPath string

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "trivia",
		Short:        "Daily trivia API server and content generator",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (YAML)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newGenerateCmd())

	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func domainBySlug(slug string) (trivia.Domain, error) {
	dom, ok := trivia.BySlug(slug)
	if !ok {
		slugs := make([]string, 0, 3)
		for _, d := range trivia.All() {
			slugs = append(slugs, d.Slug)
		}
		return trivia.Domain{}, fmt.Errorf("unknown domain %q, expected one of: %s", slug, strings.Join(slugs, ", "))
	}
	return dom, nil
}
