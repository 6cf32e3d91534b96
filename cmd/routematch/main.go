package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/routematch/internal/config"
	"github.com/vango-dev/routematch/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errNoMatch is returned by commands whose input matched nothing. main
// exits with status 2 for it and prints nothing.
var errNoMatch = stderrors.New("no match")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if stderrors.Is(err, errNoMatch) {
			os.Exit(2)
		}
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	verbose    bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "routematch",
		Short: "Compile route patterns and match URLs against them",
		Long: `routematch compiles route patterns and matches URLs against them.

Patterns describe the path, query and fragment of a URL:

  /user/{id}                 one segment captured under "id"
  /files/{*:path}            every remaining segment
  /archive/{3:date}          exactly three segments
  /toggle/{state(on|off)}    capture restricted to a whitelist
  /user/{id}(/posts/{post})  optional section
  /search?q={q}(&page={p})   query terms

Routes are read from routematch.json (or .yaml/.toml) in the current
directory or the nearest parent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				errors.DisableColors()
			}
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), opts.verbose))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to the config file (default: nearest routematch.json)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		compileCmd(opts),
		matchCmd(opts),
		resolveCmd(opts),
		urlCmd(opts),
		checkCmd(opts),
		initCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// newLogger returns a text logger writing to w; verbose enables debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads --config, or the nearest config file above the working
// directory.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("config loaded", slog.String("path", cfg.Path()), slog.Int("routes", len(cfg.Routes)))
	return cfg, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
