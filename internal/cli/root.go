// Package cli holds the cobra commands shared by the grapher binaries.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"grapher/internal/config"
	"grapher/pkg/plot"
)

const banner = `
   ██████╗ ██████╗  █████╗ ██████╗ ██╗  ██╗███████╗██████╗
  ██╔════╝ ██╔══██╗██╔══██╗██╔══██╗██║  ██║██╔════╝██╔══██╗
  ██║  ███╗██████╔╝███████║██████╔╝███████║█████╗  ██████╔╝
  ██║   ██║██╔══██╗██╔══██║██╔═══╝ ██╔══██║██╔══╝  ██╔══██╗
  ╚██████╔╝██║  ██║██║  ██║██║     ██║  ██║███████╗██║  ██║
   ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝

  Plot y = f(x), then zoom with the wheel and pan by dragging.

Expressions use x, pi and e with + - * / ^ and functions such as
sin, cos, tan, sqrt, exp, ln, log10, abs and fact.

Examples:
  grapher render "sin(x)" -o sine.png
  grapher render "1/x" --window -2,2,-5,5 --size 800x600
  grapher ops "x^2"
  grapher tui "tan(x)"
  grapher serve --addr :8080`

// globals are the persistent flags every command sees.
type globals struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the grapher command tree. extra commands, such as
// the desktop GUI, are added alongside the built-in ones.
func NewRootCommand(version string, extra ...func(*Env) *cobra.Command) *cobra.Command {
	g := &globals{}
	env := &Env{globals: g}

	root := &cobra.Command{
		Use:           "grapher",
		Short:         "Grapher - an interactive function plotter",
		Long:          banner,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.verbose {
				plot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", config.FileName, "Config file")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log render details to stderr")

	root.AddCommand(newRenderCommand(env))
	root.AddCommand(newOpsCommand(env))
	root.AddCommand(newTraceCommand(env))
	root.AddCommand(newFunctionsCommand())
	root.AddCommand(newTUICommand(env))
	root.AddCommand(newServeCommand(env))
	root.AddCommand(newWatchCommand(env))
	root.AddCommand(newConfigCommand(env))
	for _, fn := range extra {
		root.AddCommand(fn(env))
	}
	return root
}
