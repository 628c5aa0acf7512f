package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/svgpress/svgpress/internal/config"
	"github.com/svgpress/svgpress/internal/inkscape"
	"github.com/svgpress/svgpress/internal/pipeline"
)

func inlineCmd() *cobra.Command {
	var maxDepth int
	var inkscapeBin string
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "inline INPUT.svg OUTPUT.svg",
		Short: "Inline linked SVGs without exporting to PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			cfg := applyOverrides(config.Load(), inkscapeBin, timeout, maxDepth)

			runner := inkscape.New(cfg.InkscapeBin, cfg.InkscapeTimeout, log)
			if !runner.IsAvailable() {
				return fmt.Errorf("inkscape binary %q not found in PATH", cfg.InkscapeBin)
			}

			summary, err := pipeline.RunInline(cmd.Context(), runner, pipeline.Options{
				Input:    args[0],
				Output:   args[1],
				MaxDepth: cfg.MaxDepth,
			}, log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "wrote %s (%d bytes)\n", args[1], summary.OutputBytes)
			fmt.Fprintf(out, "inlined %d image(s), merged %d def(s)\n", summary.ImagesInlined, summary.DefsMerged)
			for _, w := range summary.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			return nil
		},
	}

	c.Flags().IntVar(&maxDepth, "max-depth", 0, "recursion limit for nested links (default 10)")
	c.Flags().StringVar(&inkscapeBin, "inkscape", "", "path to the inkscape binary")
	c.Flags().DurationVar(&timeout, "timeout", 0, "per-invocation inkscape timeout")
	return c
}
