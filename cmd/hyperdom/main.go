package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hyperdom/internal/config"
	"github.com/vango-dev/hyperdom/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬ ┬┬ ┬┌─┐┌─┐┬─┐┌┬┐┌─┐┌┬┐
  ├─┤└┬┘├─┘├┤ ├┬┘ │││ ││││
  ┴ ┴ ┴ ┴  └─┘┴└──┴┘└─┘┴ ┴
`

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	flags  globalFlags
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "hyperdom",
		Short: "Build DOM trees from hyperscript",
		Long: `hyperdom runs scripts that build DOM trees with the h() builder.

A script is JavaScript whose last expression is an element:

  h('div#app', h('h1', 'Hello'), h('p.lead', {style: {color: 'red'}}, 'world'))

The tree can be printed, previewed live in a browser, or uploaded
to S3 as a static snapshot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.flags.configPath, "config", "c", "", "Config file (default: hyperdom.json in the project root)")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&a.flags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		renderCmd(a),
		serveCmd(a),
		publishCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the configuration, applies flag overrides and installs the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.flags.configPath != "" {
		cfg, err = config.LoadFile(a.flags.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}

	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	if a.flags.logFormat != "" {
		cfg.Log.Format = a.flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}

// scriptPath returns the script named on the command line, or the one in
// the config.
func (a *app) scriptPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.ScriptPath()
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			writeVersion(cmd.OutOrStdout(), short)
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	return cmd
}

// writeVersion prints the version alone, or the banner and a build summary
// such as "hyperdom dev (commit none, built unknown) go1.24.11 linux/amd64".
func writeVersion(w io.Writer, short bool) {
	if short {
		fmt.Fprintln(w, version)
		return
	}
	printBanner(w)
	fmt.Fprintf(w, "\n  hyperdom %s (commit %s, built %s) %s %s/%s\n\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
