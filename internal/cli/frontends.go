package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"grapher/internal/live"
	"grapher/internal/tui"
	"grapher/internal/watch"
)

func newTUICommand(env *Env) *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:   "tui [expression]",
		Short: "Plot in the terminal with braille dots",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, opts, err := env.Options(args)
			if err != nil {
				return err
			}
			if opts, err = view.apply(opts); err != nil {
				return err
			}
			o, err := validate(opts)
			if err != nil {
				return err
			}
			return tui.Run(source, o)
		},
	}
	view.register(cmd)
	return cmd
}

func newServeCommand(env *Env) *cobra.Command {
	var (
		view viewFlags
		addr string
	)
	cmd := &cobra.Command{
		Use:   "serve [expression]",
		Short: "Serve an interactive plot to the browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, opts, err := env.Options(args)
			if err != nil {
				return err
			}
			if opts, err = view.apply(opts); err != nil {
				return err
			}
			if _, err := validate(opts); err != nil {
				return err
			}
			if addr == "" {
				cfg, err := env.Config()
				if err != nil {
					return err
				}
				addr = cfg.Serve.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving y = %s on http://%s\n", source, addr)
			return live.NewServer(source, opts...).ListenAndServe(ctx, addr)
		},
	}
	view.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: config serve.addr)")
	return cmd
}

func newWatchCommand(env *Env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the configured plot whenever the config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, env.configPath, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: config output)")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, configPath, output string) error {
	out := cmd.OutOrStdout()
	w := watch.New(configPath)
	w.Output = output
	w.OnRender = func(res watch.Result) {
		if res.Err != nil {
			fmt.Fprintf(out, "Error rendering %s: %v\n", configPath, res.Err)
			return
		}
		fmt.Fprintf(out, "Saved %s (%s)\n", res.Output, res.Trace)
	}

	fmt.Fprintf(out, "Watching %s...\n", configPath)
	return w.Run(ctx)
}
