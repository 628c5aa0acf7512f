package svgdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAbsoluteHref_ResolvesRelative(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "icon.svg")
	if err := os.WriteFile(target, []byte("<svg/>"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := AbsoluteHref("icon.svg", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, "/icon.svg") {
		t.Errorf("unexpected uri %q", got)
	}
}

func TestAbsoluteHref_MissingFileFails(t *testing.T) {
	_, err := AbsoluteHref("nope.svg", t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAbsoluteHref_PassthroughSchemes(t *testing.T) {
	for _, href := range []string{
		"data:image/svg+xml;base64,AAAA",
		"http://example.com/a.svg",
		"https://example.com/a.svg",
		"file:///tmp/a.svg",
	} {
		got, err := AbsoluteHref(href, "/anywhere")
		if err != nil {
			t.Errorf("AbsoluteHref(%q): unexpected error: %v", href, err)
			continue
		}
		if got != href {
			t.Errorf("AbsoluteHref(%q) = %q, want unchanged", href, got)
		}
	}
}

func TestHrefPath(t *testing.T) {
	path, ok, err := HrefPath("file:///tmp/with%20space/a.svg", "/base")
	if err != nil || !ok {
		t.Fatalf("unexpected result: ok=%v err=%v", ok, err)
	}
	if path != filepath.FromSlash("/tmp/with space/a.svg") {
		t.Errorf("unexpected path %q", path)
	}

	path, ok, err = HrefPath("sub/b.svg", "/base")
	if err != nil || !ok {
		t.Fatalf("unexpected result: ok=%v err=%v", ok, err)
	}
	if path != filepath.FromSlash("/base/sub/b.svg") {
		t.Errorf("unexpected path %q", path)
	}

	_, ok, err = HrefPath("https://example.com/c.svg", "/base")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("remote href should not yield a local path")
	}
}
