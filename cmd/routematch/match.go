package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/matcher"
	"github.com/vango-dev/routematch/pkg/pattern"
)

func matchCmd(opts *globalOptions) *cobra.Command {
	var (
		noTrailingSlash bool
		asJSON          bool
	)

	cmd := &cobra.Command{
		Use:   "match PATTERN URL",
		Short: "Match a URL against a single pattern",
		Long: `Match a URL against a single pattern and print the captures.

Exits with status 2 when the URL does not match.

Examples:
  routematch match '/user/{id}' /user/42
  routematch match --json '/files/{*:path}' /files/a/b/c`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := pattern.Compile(args[0], pattern.WithTrailingSlash(!noTrailingSlash))
			if err != nil {
				return errors.FromPatternError(err)
			}

			caps, ok := matcher.Match(tokens, args[1])
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(matchOutput{Matched: ok, Captures: caps.Entries()}); err != nil {
					return err
				}
			} else if ok {
				success(out, "%s matches %s", args[1], args[0])
				for key, value := range caps.All() {
					info(out, "%s = %s", key, value)
				}
			} else {
				fmt.Fprintf(out, "%s does not match %s\n", args[1], args[0])
			}

			if !ok {
				return errNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noTrailingSlash, "no-trailing-slash", false, "Do not accept a trailing \"/\" after a final literal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

type matchOutput struct {
	Matched  bool            `json:"matched"`
	Captures []matcher.Entry `json:"captures"`
}
