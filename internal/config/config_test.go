package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.InkscapeBin != "inkscape" {
		t.Errorf("expected default bin %q, got %q", "inkscape", cfg.InkscapeBin)
	}
	if cfg.MaxDepth != 10 {
		t.Errorf("expected default max depth 10, got %d", cfg.MaxDepth)
	}
	if cfg.InkscapeTimeout != 2*time.Minute {
		t.Errorf("expected default timeout 2m, got %s", cfg.InkscapeTimeout)
	}
	if !cfg.Verify {
		t.Error("expected verification enabled by default")
	}
	if cfg.KeepTemp {
		t.Error("expected temp retention disabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SVGPRESS_INKSCAPE_BIN", "/opt/inkscape/bin/inkscape")
	t.Setenv("SVGPRESS_MAX_DEPTH", "3")
	t.Setenv("SVGPRESS_TIMEOUT", "30s")
	t.Setenv("SVGPRESS_TEXT_TO_PATH", "true")

	cfg := Load()
	if cfg.InkscapeBin != "/opt/inkscape/bin/inkscape" {
		t.Errorf("unexpected bin %q", cfg.InkscapeBin)
	}
	if cfg.MaxDepth != 3 {
		t.Errorf("expected max depth 3, got %d", cfg.MaxDepth)
	}
	if cfg.InkscapeTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.InkscapeTimeout)
	}
	if !cfg.TextToPath {
		t.Error("expected text-to-path enabled")
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("SVGPRESS_MAX_DEPTH", "-5")
	t.Setenv("WORKER_COUNT", "not-a-number")

	cfg := Load()
	if cfg.MaxDepth != 10 {
		t.Errorf("expected clamp to default depth, got %d", cfg.MaxDepth)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected default worker count, got %d", cfg.WorkerCount)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.InkscapeBin = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty binary path")
	}

	cfg = Load()
	cfg.WorkDir = "/definitely/not/a/real/dir"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing work dir")
	}
}
