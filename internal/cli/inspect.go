package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"grapher/pkg/api"
	"grapher/pkg/expression"
	"grapher/pkg/plot"
)

// record renders source onto a Recorder sized by opts.
func record(source string, opts []api.Option) (*plot.Recorder, *plot.Trace, *plot.Viewport, error) {
	o, err := validate(opts)
	if err != nil {
		return nil, nil, nil, err
	}
	v := o.Window
	rec := plot.NewRecorder(o.Width, o.Height)
	r := plot.NewRenderer()
	r.Style = o.Style
	trace, err := r.Render(rec, &v, source)
	if err != nil {
		return nil, nil, nil, err
	}
	return rec, trace, &v, nil
}

func newOpsCommand(env *Env) *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:   "ops [expression]",
		Short: "List the drawing operations of one frame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, opts, err := env.Options(args)
			if err != nil {
				return err
			}
			if opts, err = view.apply(opts); err != nil {
				return err
			}
			rec, _, _, err := record(source, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== Operations (%d total) ===\n\n", len(rec.Ops))
			_, err = rec.WriteTo(out)
			return err
		},
	}
	view.register(cmd)
	return cmd
}

func newTraceCommand(env *Env) *cobra.Command {
	var view viewFlags
	cmd := &cobra.Command{
		Use:   "trace [expression]",
		Short: "Show how the curve splits into segments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, opts, err := env.Options(args)
			if err != nil {
				return err
			}
			if opts, err = view.apply(opts); err != nil {
				return err
			}
			rec, trace, v, err := record(source, opts)
			if err != nil {
				return err
			}
			printTrace(cmd.OutOrStdout(), source, v, rec, trace)
			return nil
		},
	}
	view.register(cmd)
	return cmd
}

func printTrace(w io.Writer, source string, v *plot.Viewport, rec *plot.Recorder, t *plot.Trace) {
	fmt.Fprintf(w, "y = %s\n", source)
	fmt.Fprintln(w, "────────────────────────────────────────")
	fmt.Fprintf(w, "Window: %s\n", v)
	fmt.Fprintf(w, "Surface: %dx%d pixels\n", rec.Width(), rec.Height())
	fmt.Fprintf(w, "Trace: %s\n", t)

	proj := v.Project(rec.Width(), rec.Height())
	for i, seg := range t.Segments {
		first, last := seg[0], seg[len(seg)-1]
		fmt.Fprintf(w, "%4d: %4d points, x in [%.4g, %.4g]\n",
			i, len(seg), proj.PixelXToWorld(first.X), proj.PixelXToWorld(last.X))
	}
}

func newFunctionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the functions an expression can call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			names := expression.Functions()
			fmt.Fprintf(out, "=== Functions (%d total) ===\n\n", len(names))
			for _, name := range names {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintf(out, "\nVariable: %s\nConstants: pi, e\nOperators: + - * / ^\n", expression.Variable)
			return nil
		},
	}
}
