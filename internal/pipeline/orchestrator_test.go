package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/svgpress/svgpress/internal/config"
)

func testConfig() config.Config {
	cfg := config.Load()
	cfg.WorkerCount = 1
	cfg.MaxQueueSize = 4
	cfg.Verify = true
	return cfg
}

func TestOrchestrator_ProcessesJob(t *testing.T) {
	_, main := writeTestSVGs(t)
	workDir := filepath.Dir(main)

	orch := NewOrchestrator(testConfig(), &fakeExporter{}, discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orch.Start(ctx)
	defer orch.Stop()

	job := NewJob("job-1", "main.svg", workDir, main)
	if err := orch.Submit(job); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		snap := orch.GetJob("job-1").Snapshot()
		if snap.Status == StatusCompleted || snap.Status == StatusWarnings || snap.Status == StatusFailed {
			if snap.Status != StatusCompleted {
				t.Fatalf("expected completion, got %s (%v)", snap.Status, snap.Progress.Warnings)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for job, status %s", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}

	pdf, ok := job.PDF()
	if !ok {
		t.Fatal("expected a finished pdf")
	}
	if _, err := os.Stat(pdf); err != nil {
		t.Fatalf("expected pdf on disk: %v", err)
	}
	snap := job.Snapshot()
	if snap.Progress.Pages != 1 {
		t.Errorf("expected 1 page, got %d", snap.Progress.Pages)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1

	// Not started: submissions only fill the queue.
	orch := NewOrchestrator(cfg, &fakeExporter{}, discard())

	if err := orch.Submit(NewJob("a", "a.svg", "", "")); err != nil {
		t.Fatalf("first submit should succeed: %v", err)
	}
	err := orch.Submit(NewJob("b", "b.svg", "", ""))
	if err == nil {
		t.Fatal("expected queue-full error")
	}
	if got := orch.GetJob("b").Snapshot().Status; got != StatusFailed {
		t.Errorf("expected failed status for rejected job, got %s", got)
	}
	if orch.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", orch.QueueDepth())
	}
}
