package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch"
	"github.com/vango-dev/routematch/pkg/matcher"
	"github.com/vango-dev/routematch/pkg/router"
)

func resolveCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve URL...",
		Short: "Resolve URLs against the configured route table",
		Long: `Resolve URLs against the routes in routematch.json.

Routes are tried in the order they are declared; the first match wins.
Exits with status 2 when any URL matches no route.

Examples:
  routematch resolve /user/42 /blog/hello
  routematch resolve --config routes.yaml '/search?q=go'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			r, err := routematch.FromConfig(cfg, router.WithLogger(slog.Default()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			missed := false
			results := make([]resolveOutput, 0, len(args))

			for _, url := range args {
				result, ok := r.Resolve(cmd.Context(), url)
				if !ok {
					missed = true
					results = append(results, resolveOutput{URL: url})
					if !asJSON {
						fmt.Fprintf(out, "%s → (no match)\n", url)
					}
					continue
				}

				results = append(results, resolveOutput{
					URL:      url,
					Route:    result.Route.Name,
					Captures: result.Captures.Entries(),
				})
				if !asJSON {
					fmt.Fprintf(out, "%s → %s%s\n", url, result.Route.Name, formatCaptures(result.Captures))
				}
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			}

			if missed {
				return errNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the results as JSON")

	return cmd
}

type resolveOutput struct {
	URL      string          `json:"url"`
	Route    string          `json:"route,omitempty"`
	Captures []matcher.Entry `json:"captures,omitempty"`
}

// formatCaptures renders captures as " k=v k=v", or "" when empty.
func formatCaptures(caps matcher.Captures) string {
	var b strings.Builder
	for key, value := range caps.All() {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
	}
	return b.String()
}
