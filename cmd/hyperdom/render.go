package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dop251/goja"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/vango-dev/hyperdom/internal/errors"
	"github.com/vango-dev/hyperdom/internal/watch"
	"github.com/vango-dev/hyperdom/pkg/dom"
	"github.com/vango-dev/hyperdom/pkg/script"
)

func renderCmd(a *app) *cobra.Command {
	var (
		output   string
		wait     time.Duration
		watching bool
	)

	cmd := &cobra.Command{
		Use:   "render [script.js]",
		Short: "Run a script and print the HTML it builds",
		Long: `Run a script and print the outer HTML of the element it returns.

With --wait, pending timers keep firing for up to the given duration
before the tree is serialized.

Examples:
  hyperdom render app.js
  hyperdom render app.js -o index.html
  hyperdom render clock.js --wait=2s
  hyperdom render app.js -o index.html --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.scriptPath(args)
			render := func(ctx context.Context) error {
				html, err := renderFile(ctx, a, path, wait)
				if err != nil {
					return err
				}
				return writeHTML(cmd, output, html)
			}

			if !watching {
				return render(cmd.Context())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchAndRender(ctx, cmd, path, render)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().DurationVarP(&wait, "wait", "w", 0, "Let timers run for up to this long before rendering")
	cmd.Flags().BoolVar(&watching, "watch", false, "Render again whenever a script in the same directory changes")

	return cmd
}

// writeHTML prints html, or writes it atomically to output when set.
func writeHTML(cmd *cobra.Command, output, html string) error {
	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), html)
		return nil
	}
	if err := atomic.WriteFile(output, strings.NewReader(html+"\n")); err != nil {
		return errors.New("E051").WithDetail(output).Wrap(err)
	}
	success(cmd.OutOrStdout(), "Wrote %s (%d bytes)", output, len(html)+1)
	return nil
}

// watchAndRender renders once, then again on every change until ctx is
// done. Render errors are reported and watching continues.
func watchAndRender(ctx context.Context, cmd *cobra.Command, path string, render func(context.Context) error) error {
	report := func(err error) {
		if err != nil {
			errors.Fprint(cmd.ErrOrStderr(), err)
		}
	}

	w := watch.New(watch.Config{
		Paths:      []string{filepath.Dir(path)},
		Extensions: []string{".js", ".mjs"},
	})
	report(render(ctx))
	info(cmd.OutOrStdout(), "Watching %s for changes", filepath.Dir(path))

	err := w.Run(ctx, func(changed []string) {
		info(cmd.OutOrStdout(), "Changed: %s", strings.Join(changed, ", "))
		report(render(ctx))
	})
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// renderFile runs the script at path in a fresh runtime and returns the
// outer HTML of its result.
func renderFile(ctx context.Context, a *app, path string, wait time.Duration, opts ...script.Option) (string, error) {
	opts = append([]script.Option{script.WithLogger(a.logger)}, opts...)
	rt := script.New(opts...)
	defer rt.Close()

	root, err := rt.RunFile(ctx, path)
	if err != nil {
		return "", err
	}

	if wait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		err := rt.Wait(waitCtx)
		cancel()
		if err != nil && !stderrors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		if n := rt.Pending(); n > 0 {
			a.logger.Debug("timers still pending after wait", "pending", n, "wait", wait)
		}
	}

	var html string
	err = rt.Do(ctx, func(*goja.Runtime) error {
		var err error
		html, err = dom.OuterHTML(root)
		return err
	})
	if err != nil {
		return "", errors.New("E041").Wrap(err)
	}
	return html, nil
}
