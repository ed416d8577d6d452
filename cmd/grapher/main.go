// Command grapher is the full plotter: desktop GUI plus every CLI command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grapher/internal/cli"
	"grapher/internal/gui"
	"grapher/pkg/api"
)

var version = "0.1.0"

func main() {
	root := cli.NewRootCommand(version, newGUICommand)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newGUICommand(env *cli.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "gui [expression]",
		Short: "Open the plot in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, opts, err := env.Options(args)
			if err != nil {
				return err
			}
			p, err := api.New(opts...)
			if err != nil {
				return err
			}
			defer p.Close()

			p.SetSource(source)
			gui.NewApp(p).Run()
			return nil
		},
	}
}
