// Package pdfcheck sanity-checks exported PDFs. Inkscape occasionally exits
// zero while writing a truncated or empty file; catching that here beats
// shipping a broken artifact.
package pdfcheck

import (
	"fmt"
	"os"

	pdflib "github.com/ledongthuc/pdf"
)

// Result describes a verified PDF.
type Result struct {
	Pages     int
	SizeBytes int64
}

// Verify opens the PDF at path and requires a parseable document with at
// least one page.
func Verify(path string) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("stat pdf: %w", err)
	}
	if info.Size() == 0 {
		return Result{}, fmt.Errorf("pdf %s is empty", path)
	}

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := reader.NumPage()
	if pages < 1 {
		return Result{}, fmt.Errorf("pdf %s has no pages", path)
	}
	return Result{Pages: pages, SizeBytes: info.Size()}, nil
}
