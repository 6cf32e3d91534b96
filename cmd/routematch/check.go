package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/pkg/pattern"
)

func checkCmd(opts *globalOptions) *cobra.Command {
	var listRoutes bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and compile every route",
		Long: `Validate routematch.json and compile every route pattern.

Reports the first invalid setting or pattern with its location.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cfg.Routes) == 0 {
				warn(out, "%s defines no routes", cfg.Path())
				return nil
			}

			success(out, "%s: %d routes compiled", cfg.Path(), len(cfg.Routes))
			if listRoutes {
				for _, rc := range cfg.Routes {
					tokens := pattern.MustCompile(rc.Pattern, cfg.PatternOptions()...)
					info(out, "%-16s %s", rc.Name, pattern.Format(tokens))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&listRoutes, "list", "l", false, "List each route with its compiled form")

	return cmd
}
