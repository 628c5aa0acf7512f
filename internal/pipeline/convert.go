package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"

	"github.com/svgpress/svgpress/internal/inliner"
	"github.com/svgpress/svgpress/internal/pdfcheck"
	"github.com/svgpress/svgpress/internal/svgdoc"
)

// Exporter is the slice of the Inkscape runner the pipeline needs.
type Exporter interface {
	inliner.PlainConverter
	ExportPDF(ctx context.Context, svgPath, pdfPath string, textToPath bool) error
}

// Options controls a single conversion run.
type Options struct {
	Input      string // input SVG path
	Output     string // output PDF path
	TextToPath bool
	KeepTemp   bool // retain the inlined intermediate SVG
	MaxDepth   int
	Verify     bool

	// OnPhase, when set, observes phase transitions
	// (preparing, inlining, exporting, verifying).
	OnPhase func(phase string)
}

// Summary reports what a conversion run produced.
type Summary struct {
	ImagesInlined int
	DefsMerged    int
	Warnings      []string
	Pages         int
	OutputBytes   int64
	InlinedSVG    string // set when KeepTemp retained the intermediate
}

// Run executes the full conversion: plain-SVG normalization, recursive
// inlining, PDF export and verification. Transient Inkscape failures during
// export are retried with backoff.
func Run(ctx context.Context, exp Exporter, opts Options, log *slog.Logger) (*Summary, error) {
	doc, res, err := inlineDocument(ctx, exp, opts, log)
	if err != nil {
		return nil, err
	}

	inlinedPath := tempInlinedPath(opts.Input)
	if err := svgdoc.WriteFile(doc, inlinedPath); err != nil {
		return nil, err
	}
	keep := opts.KeepTemp
	defer func() {
		if !keep {
			os.Remove(inlinedPath)
		}
	}()

	summary := &Summary{
		ImagesInlined: res.ImagesInlined,
		DefsMerged:    res.DefsMerged,
		Warnings:      res.Warnings,
	}
	if keep {
		summary.InlinedSVG = inlinedPath
		log.Info("keeping inlined svg", "path", inlinedPath)
	}

	phase(opts, "exporting")
	if err := exportWithRetry(ctx, exp, inlinedPath, opts.Output, opts.TextToPath, log); err != nil {
		return nil, err
	}

	if opts.Verify {
		phase(opts, "verifying")
		check, err := pdfcheck.Verify(opts.Output)
		if err != nil {
			return nil, fmt.Errorf("exported pdf failed verification: %w", err)
		}
		summary.Pages = check.Pages
		summary.OutputBytes = check.SizeBytes
	} else if info, err := os.Stat(opts.Output); err == nil {
		summary.OutputBytes = info.Size()
	}

	log.Info("conversion complete",
		"output", opts.Output,
		"images_inlined", summary.ImagesInlined,
		"defs_merged", summary.DefsMerged,
		"warnings", len(summary.Warnings),
	)
	return summary, nil
}

// RunInline performs normalization and inlining only, writing the merged SVG
// to output instead of exporting a PDF.
func RunInline(ctx context.Context, exp Exporter, opts Options, log *slog.Logger) (*Summary, error) {
	doc, res, err := inlineDocument(ctx, exp, opts, log)
	if err != nil {
		return nil, err
	}
	if err := svgdoc.WriteFile(doc, opts.Output); err != nil {
		return nil, err
	}
	info, _ := os.Stat(opts.Output)
	summary := &Summary{
		ImagesInlined: res.ImagesInlined,
		DefsMerged:    res.DefsMerged,
		Warnings:      res.Warnings,
	}
	if info != nil {
		summary.OutputBytes = info.Size()
	}
	log.Info("inlining complete", "output", opts.Output, "images_inlined", res.ImagesInlined)
	return summary, nil
}

// inlineDocument normalizes the main document to plain SVG, parses it and
// inlines every linked SVG. The intermediate plain file is always removed.
func inlineDocument(ctx context.Context, exp Exporter, opts Options, log *slog.Logger) (*etree.Document, *inliner.Result, error) {
	input, err := filepath.Abs(opts.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve input: %w", err)
	}
	if _, err := os.Stat(input); err != nil {
		return nil, nil, fmt.Errorf("input svg: %w", err)
	}

	phase(opts, "preparing")
	plainMain, err := exp.ExportPlainSVG(ctx, input)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize main svg: %w", err)
	}
	defer os.Remove(plainMain)

	doc, err := svgdoc.Load(plainMain)
	if err != nil {
		return nil, nil, err
	}

	phase(opts, "inlining")
	in := inliner.New(exp, opts.MaxDepth, log)
	res, err := in.Inline(ctx, doc, filepath.Dir(input))
	if err != nil {
		return nil, nil, err
	}
	return doc, res, nil
}

func exportWithRetry(ctx context.Context, exp Exporter, svgPath, pdfPath string, textToPath bool, log *slog.Logger) error {
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		lastErr = exp.ExportPDF(ctx, svgPath, pdfPath, textToPath)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		log.Warn("retryable export error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

func tempInlinedPath(input string) string {
	dir := filepath.Dir(input)
	return filepath.Join(dir, "temp_inlined_"+filepath.Base(input))
}

func phase(opts Options, name string) {
	if opts.OnPhase != nil {
		opts.OnPhase(name)
	}
}
