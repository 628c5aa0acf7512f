package inkscape

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Defaults(t *testing.T) {
	r := New("", 0, discard())
	if r.bin != "inkscape" {
		t.Errorf("expected default bin %q, got %q", "inkscape", r.bin)
	}
	if r.timeout != DefaultTimeout {
		t.Errorf("expected default timeout %s, got %s", DefaultTimeout, r.timeout)
	}
}

func TestIsAvailable_MissingBinary(t *testing.T) {
	r := New("definitely-not-a-real-binary-4f9c", time.Second, discard())
	if r.IsAvailable() {
		t.Error("expected missing binary to be unavailable")
	}
}

func TestVersion_MissingBinaryReturnsExecError(t *testing.T) {
	r := New("definitely-not-a-real-binary-4f9c", time.Second, discard())
	_, err := r.Version(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %T", err)
	}
	if execErr.Transient {
		t.Error("a missing binary is not a transient failure")
	}
}

func TestExecError_MessageIncludesStderr(t *testing.T) {
	err := &ExecError{
		Bin:    "inkscape",
		Args:   []string{"in.svg", "--export-type=pdf"},
		Stderr: "segmentation fault",
		Err:    errors.New("exit status 139"),
	}
	msg := err.Error()
	for _, want := range []string{"inkscape", "--export-type=pdf", "segmentation fault", "exit status 139"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q, got %q", want, msg)
		}
	}
}

func TestTail_TruncatesLongOutput(t *testing.T) {
	long := strings.Repeat("x", 5000)
	got := tail(long, 100)
	if len(got) != 103 {
		t.Errorf("expected 103 bytes (ellipsis + 100), got %d", len(got))
	}
	if !strings.HasPrefix(got, "...") {
		t.Errorf("expected truncation marker, got %q", got[:10])
	}
	if tail("short", 100) != "short" {
		t.Error("short output should be unchanged")
	}
}
