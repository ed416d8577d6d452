package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"grapher/pkg/api"
	"grapher/pkg/raster"
)

func newRenderCommand(env *Env) *cobra.Command {
	var (
		view    viewFlags
		output  string
		format  string
		quality int
		zoom    float64
		pan     string
	)

	cmd := &cobra.Command{
		Use:   "render [expression]",
		Short: "Render a plot to an image file",
		Long: `Renders the expression to PNG, JPEG or GIF. The format follows the
output file's extension unless --format is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, opts, err := env.Options(args)
			if err != nil {
				return err
			}
			if opts, err = view.apply(opts); err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				f, err := raster.ParseFormat(format)
				if err != nil {
					return err
				}
				opts = append(opts, api.Format(f))
			}
			if cmd.Flags().Changed("quality") {
				opts = append(opts, api.JPEGQuality(quality))
			}
			if output == "" {
				cfg, err := env.Config()
				if err != nil {
					return err
				}
				output = cfg.Output
			}
			return runRender(cmd, source, output, opts, zoom, pan)
		},
	}

	view.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: config output)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Image format: png, jpeg or gif")
	cmd.Flags().IntVar(&quality, "quality", 90, "JPEG quality (1-100)")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "Zoom factor about the window center, >1 zooms in")
	cmd.Flags().StringVar(&pan, "pan", "", "Pan by a pixel drag of dx,dy before rendering")
	return cmd
}

func runRender(cmd *cobra.Command, source, output string, opts []api.Option, zoom float64, pan string) error {
	p, err := api.New(opts...)
	if err != nil {
		return err
	}
	defer p.Close()

	v := p.Viewport()
	if zoom != 1 {
		cx, cy := v.Center()
		if err := v.ZoomAt(cx, cy, zoom); err != nil {
			return fmt.Errorf("invalid --zoom: %w", err)
		}
	}
	if pan != "" {
		d, err := parseFloats(pan, 2)
		if err != nil {
			return fmt.Errorf("invalid --pan: %w", err)
		}
		o := p.Options()
		if err := v.PanByPixels(o.Width, o.Height, d[0], d[1]); err != nil {
			return fmt.Errorf("invalid --pan: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rendering y = %s over %s...\n", source, v)
	trace, err := p.Render(source)
	if err != nil {
		return err
	}
	if err := p.Save(output); err != nil {
		return fmt.Errorf("failed to save %s: %w", output, err)
	}

	bounds := p.Image().Bounds()
	fmt.Fprintf(out, "Plotted %s\n", trace)
	fmt.Fprintf(out, "Saved %s (%dx%d pixels)\n", output, bounds.Dx(), bounds.Dy())
	return nil
}
