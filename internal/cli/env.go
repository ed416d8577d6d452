package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"grapher/internal/config"
	"grapher/pkg/api"
)

// Env gives commands access to the loaded config and the view flags.
type Env struct {
	*globals
}

// viewFlags are the flags that override the config's view settings.
type viewFlags struct {
	window string
	size   string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.window, "window", "", "World window as xmin,xmax,ymin,ymax")
	cmd.Flags().StringVar(&f.size, "size", "", "Surface size as WIDTHxHEIGHT")
}

// Config loads the config file named by --config.
func (e *Env) Config() (*config.Config, error) {
	return config.Load(e.configPath)
}

// Options loads the config and converts it to plot options. The first
// argument, when present, replaces the configured expression.
func (e *Env) Options(args []string) (string, []api.Option, error) {
	cfg, err := e.Config()
	if err != nil {
		return "", nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return "", nil, err
	}
	source := cfg.Expression
	if len(args) > 0 {
		source = args[0]
	}
	return source, opts, nil
}

// apply appends the options selected by the view flags.
func (f *viewFlags) apply(opts []api.Option) ([]api.Option, error) {
	if f.window != "" {
		w, err := parseFloats(f.window, 4)
		if err != nil {
			return nil, fmt.Errorf("invalid --window: %w", err)
		}
		opts = append(opts, api.Window(w[0], w[1], w[2], w[3]))
	}
	if f.size != "" {
		width, height, err := parseSize(f.size)
		if err != nil {
			return nil, fmt.Errorf("invalid --size: %w", err)
		}
		opts = append(opts, api.Size(width, height))
	}
	return opts, nil
}

// validate resolves opts so bad flags fail before a front end starts.
func validate(opts []api.Option) (api.Options, error) {
	o := api.NewOptions(opts...)
	return o, o.Validate()
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WIDTHxHEIGHT, got %q", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, err
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, err
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size must be positive, got %q", s)
	}
	return width, height, nil
}
