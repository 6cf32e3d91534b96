package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/internal/errors"
)

// exampleRoutes seed a new configuration.
var exampleRoutes = []config.RouteConfig{
	{Name: "home", Pattern: "/"},
	{Name: "user", Pattern: "/user/{id}(/posts/{post})"},
	{Name: "files", Pattern: "/files/{*:path}"},
	{Name: "search", Pattern: "/search?q={q}(&page={page})"},
}

func initCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Create a routematch config file",
		Long: `Create a routematch config file with a few example routes.

Examples:
  routematch init
  routematch init --format yaml ./service`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			name, err := configFileName(format)
			if err != nil {
				return err
			}

			if !force && config.Exists(dir) {
				return errors.New("E140").
					WithDetail("A routematch config already exists in " + dir).
					WithSuggestion("Pass --force to overwrite it")
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.New("E120").Wrap(err)
			}

			cfg := config.New()
			cfg.Routes = append([]config.RouteConfig(nil), exampleRoutes...)

			path := filepath.Join(dir, name)
			if err := cfg.SaveTo(path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			success(out, "Created %s", path)
			info(out, "Try: routematch --config %s resolve /user/42", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "File format: json, yaml or toml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")

	return cmd
}

func configFileName(format string) (string, error) {
	switch format {
	case "json":
		return config.ConfigFileName, nil
	case "yaml", "yml":
		return "routematch.yaml", nil
	case "toml":
		return "routematch.toml", nil
	}
	return "", errors.New("E140").
		WithDetail(fmt.Sprintf("Unknown format %q", format)).
		WithSuggestion("Use json, yaml or toml")
}
