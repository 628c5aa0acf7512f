// Package inkscape shells out to the Inkscape binary for the two operations
// this tool cannot do itself: normalizing documents to plain SVG and
// rendering the final PDF.
package inkscape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds a single Inkscape invocation.
const DefaultTimeout = 2 * time.Minute

// Runner invokes Inkscape. The zero value is not usable; construct with New.
type Runner struct {
	bin     string
	timeout time.Duration
	log     *slog.Logger
}

func New(bin string, timeout time.Duration, log *slog.Logger) *Runner {
	if bin == "" {
		bin = "inkscape"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{bin: bin, timeout: timeout, log: log}
}

// IsAvailable reports whether the configured binary can be found.
func (r *Runner) IsAvailable() bool {
	_, err := exec.LookPath(r.bin)
	return err == nil
}

// Version returns the first line of `inkscape --version`.
func (r *Runner) Version(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}

// ExportPlainSVG converts an SVG to plain SVG next to the source file
// (plain_<name>), vacuuming unused defs, and returns the output path.
// Callers own the produced file and are expected to remove it.
func (r *Runner) ExportPlainSVG(ctx context.Context, svgPath string) (string, error) {
	outPath := filepath.Join(filepath.Dir(svgPath), "plain_"+filepath.Base(svgPath))
	r.log.Debug("converting to plain svg", "input", svgPath, "output", outPath)

	_, err := r.run(ctx,
		svgPath,
		"--export-plain-svg",
		"--export-filename="+outPath,
		"--vacuum-defs",
	)
	if err != nil {
		return "", err
	}

	info, statErr := os.Stat(outPath)
	if statErr != nil || info.Size() == 0 {
		return "", fmt.Errorf("plain svg output %s is empty or missing", outPath)
	}
	return outPath, nil
}

// ExportPDF renders an SVG file to PDF. When textToPath is set, text is
// outlined so the result does not depend on installed fonts.
func (r *Runner) ExportPDF(ctx context.Context, svgPath, pdfPath string, textToPath bool) error {
	args := []string{
		svgPath,
		"--export-type=pdf",
		"--export-filename=" + pdfPath,
	}
	if textToPath {
		args = append(args, "--export-text-to-path")
	}

	r.log.Debug("exporting pdf", "input", svgPath, "output", pdfPath, "text_to_path", textToPath)
	if _, err := r.run(ctx, args...); err != nil {
		return err
	}

	info, err := os.Stat(pdfPath)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("pdf output %s is empty or missing", pdfPath)
	}
	return nil
}

func (r *Runner) run(ctx context.Context, args ...string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	execErr := &ExecError{
		Bin:    r.bin,
		Args:   args,
		Stderr: tail(stderr.String(), 2048),
		Err:    err,
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		execErr.Transient = true
		execErr.Err = fmt.Errorf("timed out after %s: %w", r.timeout, err)
	}
	if errors.Is(err, exec.ErrNotFound) {
		execErr.Err = fmt.Errorf("%s not found in PATH: %w", r.bin, err)
	}
	return nil, execErr
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
