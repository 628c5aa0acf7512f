package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/svgpress/svgpress/internal/config"
)

// Worker processes a single conversion job.
type Worker struct {
	exp Exporter
	log *slog.Logger
	cfg config.Config
}

func NewWorker(exp Exporter, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{exp: exp, log: log, cfg: cfg}
}

// Process runs the full conversion for a job, mapping phases onto job
// statuses. The produced PDF lands in the job's working directory.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	maxDepth := job.MaxDepth
	if maxDepth <= 0 {
		maxDepth = w.cfg.MaxDepth
	}

	pdfPath := filepath.Join(job.WorkDir(), pdfName(job.Filename))
	lastPhase := "queued"
	opts := Options{
		Input:      job.Input(),
		Output:     pdfPath,
		TextToPath: job.TextToPath,
		MaxDepth:   maxDepth,
		Verify:     w.cfg.Verify,
		OnPhase: func(phase string) {
			lastPhase = phase
			switch phase {
			case "preparing":
				job.SetStatus(StatusPreparing, phase)
			case "inlining":
				job.SetStatus(StatusInlining, phase)
			case "exporting":
				job.SetStatus(StatusExporting, phase)
			case "verifying":
				job.SetStatus(StatusVerifying, phase)
			}
		},
	}

	summary, err := Run(ctx, w.exp, opts, log)
	if err != nil {
		log.Error("conversion failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, lastPhase)
		return
	}

	job.SetCounts(summary.ImagesInlined, summary.DefsMerged)
	job.AddWarnings(summary.Warnings)
	job.SetResult(pdfPath, summary.Pages)

	if len(summary.Warnings) > 0 {
		job.SetStatus(StatusWarnings, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("job complete", "status", job.Snapshot().Status, "pages", summary.Pages)
}

func pdfName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "output"
	}
	return base + ".pdf"
}
