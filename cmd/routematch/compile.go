package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/pattern"
)

func compileCmd(opts *globalOptions) *cobra.Command {
	var (
		noTrailingSlash bool
		maxDepth        int
		asJSON          bool
	)

	cmd := &cobra.Command{
		Use:   "compile PATTERN...",
		Short: "Compile patterns and print their token trees",
		Long: `Compile one or more route patterns and print the optimized tokens.

Invalid patterns are reported with the offending position.

Examples:
  routematch compile '/user/{id}(/posts/{post})'
  routematch compile --json '/search?q={q}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compileOpts := []pattern.Option{
				pattern.WithTrailingSlash(!noTrailingSlash),
			}
			if maxDepth > 0 {
				compileOpts = append(compileOpts, pattern.WithMaxDepth(maxDepth))
			}

			out := cmd.OutOrStdout()
			var compiled []compiledPattern
			for _, pat := range args {
				tokens, err := pattern.Compile(pat, compileOpts...)
				if err != nil {
					return errors.FromPatternError(err)
				}
				if asJSON {
					compiled = append(compiled, compiledPattern{
						Pattern: pat,
						Tokens:  tokenTree(tokens),
						Keys:    pattern.Keys(tokens),
					})
					continue
				}
				printCompiled(out, pat, tokens)
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(compiled)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noTrailingSlash, "no-trailing-slash", false, "Do not accept a trailing \"/\" after a final literal")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum optional-group nesting (default 32)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the token trees as JSON")

	return cmd
}

// compiledPattern is the JSON form of one compiled pattern.
type compiledPattern struct {
	Pattern string      `json:"pattern"`
	Tokens  []tokenNode `json:"tokens"`
	Keys    []string    `json:"keys"`
}

// tokenNode is the JSON form of a MatcherToken.
type tokenNode struct {
	Kind     string      `json:"kind"`
	Literal  string      `json:"literal,omitempty"`
	Capture  string      `json:"capture,omitempty"`
	Key      string      `json:"key,omitempty"`
	Variant  string      `json:"variant,omitempty"`
	Sections int         `json:"sections,omitempty"`
	Allowed  []string    `json:"allowed,omitempty"`
	Inner    []tokenNode `json:"inner,omitempty"`
}

func tokenTree(tokens []pattern.MatcherToken) []tokenNode {
	nodes := make([]tokenNode, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case pattern.Match:
			nodes = append(nodes, tokenNode{Kind: "match", Literal: t.Literal})
		case pattern.CaptureMatch:
			nodes = append(nodes, tokenNode{
				Kind:     "capture",
				Capture:  t.Capture.String(),
				Key:      t.Capture.Key(),
				Variant:  t.Capture.Kind.String(),
				Sections: t.Capture.Sections,
				Allowed:  t.Capture.Allowed,
			})
		case pattern.OptionalMatch:
			nodes = append(nodes, tokenNode{Kind: "optional", Inner: tokenTree(t.Inner)})
		}
	}
	return nodes
}

func printCompiled(w io.Writer, pat string, tokens []pattern.MatcherToken) {
	fmt.Fprintf(w, "%s\n", pat)
	info(w, "tokens: %s", pattern.Format(tokens))
	if keys := pattern.Keys(tokens); len(keys) > 0 {
		info(w, "keys:   %s", strings.Join(keys, ", "))
	}
	printTree(w, tokens, 2)
}

func printTree(w io.Writer, tokens []pattern.MatcherToken, indent int) {
	pad := strings.Repeat("  ", indent)
	for _, t := range tokens {
		switch t.Kind {
		case pattern.Match:
			fmt.Fprintf(w, "%smatch    %q\n", pad, t.Literal)
		case pattern.CaptureMatch:
			fmt.Fprintf(w, "%scapture  %s (%s, key %q)\n", pad, t.Capture, t.Capture.Kind, t.Capture.Key())
		case pattern.OptionalMatch:
			fmt.Fprintf(w, "%soptional\n", pad)
			printTree(w, t.Inner, indent+1)
		}
	}
}
