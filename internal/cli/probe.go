package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/svgpress/svgpress/internal/config"
	"github.com/svgpress/svgpress/internal/inkscape"
)

func probeCmd() *cobra.Command {
	var inkscapeBin string
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "probe",
		Short: "Check that the Inkscape binary is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := applyOverrides(config.Load(), inkscapeBin, timeout, 0)

			runner := inkscape.New(cfg.InkscapeBin, cfg.InkscapeTimeout, logger())
			if !runner.IsAvailable() {
				return fmt.Errorf("inkscape binary %q not found in PATH", cfg.InkscapeBin)
			}

			version, err := runner.Version(cmd.Context())
			if err != nil {
				return fmt.Errorf("inkscape found but not runnable: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version)
			return nil
		},
	}

	c.Flags().StringVar(&inkscapeBin, "inkscape", "", "path to the inkscape binary")
	c.Flags().DurationVar(&timeout, "timeout", 0, "per-invocation inkscape timeout")
	return c
}
