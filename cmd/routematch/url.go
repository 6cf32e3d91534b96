package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch"
	"github.com/vango-dev/routematch/internal/errors"
)

func urlCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url NAME [KEY=VALUE...]",
		Short: "Build a URL from a named route",
		Long: `Build a URL by filling a named route's captures with values.

Optional sections are emitted only when all of their captures are given.

Examples:
  routematch url user id=42
  routematch url user id=42 post=7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[1:])
			if err != nil {
				return err
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			r, err := routematch.FromConfig(cfg)
			if err != nil {
				return err
			}

			url, err := r.URL(args[0], values)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	return cmd
}

// parseValues turns key=value arguments into a map.
func parseValues(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.New("E140").
				WithDetail(fmt.Sprintf("Expected KEY=VALUE, got %q", arg)).
				WithExample("routematch url user id=42")
		}
		values[key] = value
	}
	return values, nil
}
