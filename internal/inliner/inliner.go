// Package inliner replaces <image> references to local SVG files with the
// referenced content, recursively, so the merged document renders without
// external dependencies.
package inliner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/svgpress/svgpress/internal/svgdoc"
)

// DefaultMaxDepth bounds recursion through nested links. Ten levels matches
// any reasonable document; deeper nesting almost certainly means a cycle.
const DefaultMaxDepth = 10

// PlainConverter normalizes an SVG file to plain SVG and returns the path of
// the produced file. The caller removes the file when done.
type PlainConverter interface {
	ExportPlainSVG(ctx context.Context, svgPath string) (string, error)
}

// Inliner performs recursive inlining on parsed SVG documents.
type Inliner struct {
	conv     PlainConverter
	log      *slog.Logger
	maxDepth int
}

func New(conv PlainConverter, maxDepth int, log *slog.Logger) *Inliner {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Inliner{conv: conv, log: log, maxDepth: maxDepth}
}

// Result summarizes an inlining pass. Warnings hold per-image failures that
// did not abort the run.
type Result struct {
	ImagesInlined int
	DefsMerged    int
	Warnings      []string
}

func (r *Result) warnf(log *slog.Logger, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Warn(msg)
	r.Warnings = append(r.Warnings, msg)
}

// Inline rewrites doc in place, substituting every local SVG <image>
// reference with the linked content. baseDir anchors relative hrefs
// (normally the directory of the original input file). Failures on
// individual images are recorded as warnings; only a cancelled context
// aborts the pass.
func (in *Inliner) Inline(ctx context.Context, doc *etree.Document, baseDir string) (*Result, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	mainDefs := svgdoc.EnsureDefs(root)
	res := &Result{}

	in.absolutizeHrefs(root, baseDir, res)

	if err := in.process(ctx, root, baseDir, mainDefs, 0, res); err != nil {
		return res, err
	}
	return res, nil
}

// absolutizeHrefs rewrites relative image hrefs on the main document to
// file:// URIs so the serialized intermediate stays resolvable from wherever
// Inkscape is later invoked.
func (in *Inliner) absolutizeHrefs(root *etree.Element, baseDir string, res *Result) {
	for _, image := range svgdoc.Images(root) {
		href, key := svgdoc.Href(image)
		if href == "" {
			continue
		}
		abs, err := svgdoc.AbsoluteHref(href, baseDir)
		if err != nil {
			res.warnf(in.log, "href %q: %v", href, err)
			continue
		}
		if abs != href {
			image.RemoveAttr(key)
			image.CreateAttr(key, abs)
			in.log.Debug("made href absolute", "href", abs)
		}
	}
}

func (in *Inliner) process(ctx context.Context, scope *etree.Element, baseDir string, mainDefs *etree.Element, depth int, res *Result) error {
	if depth > in.maxDepth {
		res.warnf(in.log, "max recursion depth (%d) exceeded, stopping", in.maxDepth)
		return nil
	}

	for _, image := range svgdoc.Images(scope) {
		if err := ctx.Err(); err != nil {
			return err
		}

		href, _ := svgdoc.Href(image)
		if href == "" || !svgdoc.IsSVGHref(href) {
			continue
		}

		path, ok, err := svgdoc.HrefPath(href, baseDir)
		if err != nil {
			res.warnf(in.log, "href %q: %v", href, err)
			continue
		}
		if !ok {
			continue // remote or data URI, left for Inkscape
		}
		if _, err := os.Stat(path); err != nil {
			res.warnf(in.log, "linked svg not found: %s", path)
			continue
		}

		in.log.Info("inlining", "file", filepath.Base(path), "depth", depth)
		if err := in.inlineOne(ctx, scope, image, path, mainDefs, depth, res); err != nil {
			if ctx.Err() != nil {
				return err
			}
			res.warnf(in.log, "failed to inline %s: %v", path, err)
		}
	}
	return nil
}

// inlineOne substitutes a single <image> element with the content of the SVG
// file it references.
func (in *Inliner) inlineOne(ctx context.Context, scope *etree.Element, image *etree.Element, path string, mainDefs *etree.Element, depth int, res *Result) error {
	plainPath, err := in.conv.ExportPlainSVG(ctx, path)
	if err != nil {
		return err
	}
	defer os.Remove(plainPath)

	sub, err := svgdoc.Load(plainPath)
	if err != nil {
		return err
	}
	subRoot := sub.Root()

	// Depth-first: nested links inside the linked document are resolved
	// before its content moves into this document.
	if err := in.process(ctx, subRoot, filepath.Dir(plainPath), mainDefs, depth+1, res); err != nil {
		return err
	}

	vb, fellBack := svgdoc.DocumentViewBox(subRoot)
	if fellBack {
		res.warnf(in.log, "no usable viewBox in %s, assuming %gx%g", filepath.Base(path), vb.Width, vb.Height)
	}

	x := svgdoc.AttrFloat(image, "x", 0)
	y := svgdoc.AttrFloat(image, "y", 0)
	width := svgdoc.AttrFloat(image, "width", vb.Width)
	height := svgdoc.AttrFloat(image, "height", vb.Height)

	transform := ComposeTransform(
		image.SelectAttrValue("transform", ""),
		x, y,
		width/vb.Width, height/vb.Height,
		vb.MinX, vb.MinY,
	)
	group := svgdoc.NewGroup(scope, transform)

	// Move content into the wrapper group; defs merge into the main
	// document's defs so shared gradients and symbols stay resolvable.
	for _, child := range subRoot.ChildElements() {
		if child.Tag == "defs" {
			for _, def := range child.ChildElements() {
				mainDefs.AddChild(def)
				res.DefsMerged++
			}
			continue
		}
		group.AddChild(child)
	}

	parent := image.Parent()
	idx := image.Index()
	parent.InsertChildAt(idx, group)
	parent.RemoveChild(image)

	res.ImagesInlined++
	return nil
}
