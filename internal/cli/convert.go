package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/svgpress/svgpress/internal/config"
	"github.com/svgpress/svgpress/internal/inkscape"
	"github.com/svgpress/svgpress/internal/pipeline"
)

func convertCmd() *cobra.Command {
	var textToPath bool
	var keepTemp bool
	var noVerify bool
	var maxDepth int
	var inkscapeBin string
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "convert INPUT.svg OUTPUT.pdf",
		Short: "Inline linked SVGs and export the merged document to PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			cfg := applyOverrides(config.Load(), inkscapeBin, timeout, maxDepth)

			runner := inkscape.New(cfg.InkscapeBin, cfg.InkscapeTimeout, log)
			if !runner.IsAvailable() {
				return fmt.Errorf("inkscape binary %q not found in PATH", cfg.InkscapeBin)
			}

			summary, err := pipeline.Run(cmd.Context(), runner, pipeline.Options{
				Input:      args[0],
				Output:     args[1],
				TextToPath: textToPath || cfg.TextToPath,
				KeepTemp:   keepTemp || cfg.KeepTemp,
				MaxDepth:   cfg.MaxDepth,
				Verify:     cfg.Verify && !noVerify,
			}, log)
			if err != nil {
				return err
			}

			printSummary(cmd, args[1], summary)
			return nil
		},
	}

	c.Flags().BoolVar(&textToPath, "text-to-path", false, "convert text to paths during export")
	c.Flags().BoolVar(&keepTemp, "keep-temp", false, "keep the inlined intermediate SVG")
	c.Flags().BoolVar(&noVerify, "no-verify", false, "skip verification of the exported PDF")
	c.Flags().IntVar(&maxDepth, "max-depth", 0, "recursion limit for nested links (default 10)")
	c.Flags().StringVar(&inkscapeBin, "inkscape", "", "path to the inkscape binary")
	c.Flags().DurationVar(&timeout, "timeout", 0, "per-invocation inkscape timeout")
	return c
}

func applyOverrides(cfg config.Config, bin string, timeout time.Duration, maxDepth int) config.Config {
	if bin != "" {
		cfg.InkscapeBin = bin
	}
	if timeout > 0 {
		cfg.InkscapeTimeout = timeout
	}
	if maxDepth > 0 {
		cfg.MaxDepth = maxDepth
	}
	return cfg
}

func printSummary(cmd *cobra.Command, output string, s *pipeline.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wrote %s", output)
	if s.Pages > 0 {
		fmt.Fprintf(out, " (%d page(s), %d bytes)", s.Pages, s.OutputBytes)
	}
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "inlined %d image(s), merged %d def(s)\n", s.ImagesInlined, s.DefsMerged)
	if s.InlinedSVG != "" {
		fmt.Fprintf(out, "kept inlined svg: %s\n", s.InlinedSVG)
	}
	for _, w := range s.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
}
