package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "svgpress",
		Short:        "Inline linked SVG images and export to PDF via Inkscape",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	cmd.AddCommand(convertCmd())
	cmd.AddCommand(inlineCmd())
	cmd.AddCommand(probeCmd())
	cmd.AddCommand(serveCmd())
	return cmd
}

// logger builds the CLI logger: human-readable text on stderr, debug level
// behind --verbose. The serve command replaces this with a JSON logger.
func logger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
