package svgdoc

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Remote or embedded hrefs are never inlined; they pass through to Inkscape
// untouched.
func isExternalHref(href string) bool {
	return strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "http:") ||
		strings.HasPrefix(href, "https:")
}

// AbsoluteHref converts a relative href into a file:// URI resolved against
// baseDir. Absolute paths, file URIs, data URIs and remote URLs are returned
// unchanged. The referenced file must exist.
func AbsoluteHref(href, baseDir string) (string, error) {
	if isExternalHref(href) || strings.HasPrefix(href, "file://") || filepath.IsAbs(href) {
		return href, nil
	}
	abs, err := filepath.Abs(filepath.Join(baseDir, filepath.FromSlash(href)))
	if err != nil {
		return "", fmt.Errorf("resolve href %q: %w", href, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("linked file %s: %w", abs, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("linked file %s is a directory", abs)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// HrefPath extracts the local filesystem path an href points at. Relative
// hrefs are resolved against baseDir; file URIs are percent-decoded. Remote
// and data URIs yield ok=false.
func HrefPath(href, baseDir string) (path string, ok bool, err error) {
	if isExternalHref(href) {
		return "", false, nil
	}
	if strings.HasPrefix(href, "file://") {
		u, err := url.Parse(href)
		if err != nil {
			return "", false, fmt.Errorf("href %q: %w", href, err)
		}
		p := u.Path
		// file:///C:/x parses to /C:/x on Windows-authored documents.
		if len(p) > 2 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
		return filepath.FromSlash(p), true, nil
	}
	if filepath.IsAbs(href) {
		return filepath.Clean(href), true, nil
	}
	abs, err := filepath.Abs(filepath.Join(baseDir, filepath.FromSlash(href)))
	if err != nil {
		return "", false, fmt.Errorf("href %q: %w", href, err)
	}
	return abs, true, nil
}
