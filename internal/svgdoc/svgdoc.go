package svgdoc

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// SVG namespace URIs. Documents are matched by local tag name so both
// default-namespace and prefixed trees are handled.
const (
	SVGNamespace   = "http://www.w3.org/2000/svg"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
)

// Load reads and parses an SVG file into a mutable document tree.
func Load(path string) (*etree.Document, error) {
	doc := newDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := checkRoot(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// Parse reads an SVG document from a reader.
func Parse(r io.Reader) (*etree.Document, error) {
	doc := newDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if err := checkRoot(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	// Most SVGs are UTF-8 but Inkscape happily writes other declared
	// encodings; decode whatever the declaration names.
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	return doc
}

func checkRoot(doc *etree.Document) error {
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("document has no root element")
	}
	if root.Tag != "svg" {
		return fmt.Errorf("root element is <%s>, not <svg>", root.FullTag())
	}
	return nil
}

// Images collects every <image> element in document order.
func Images(root *etree.Element) []*etree.Element {
	var out []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == "image" {
			out = append(out, el)
			return // <image> has no element content worth descending into
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	for _, child := range root.ChildElements() {
		walk(child)
	}
	return out
}

// Href returns an <image> element's link target and the attribute key it was
// found under. Both the legacy xlink:href and the SVG2 bare href are
// recognized, xlink taking precedence as in the original documents.
func Href(image *etree.Element) (value, key string) {
	for _, attr := range image.Attr {
		if attr.Key == "href" && attr.Space != "" {
			return attr.Value, attr.Space + ":" + attr.Key
		}
	}
	if v := image.SelectAttrValue("href", ""); v != "" {
		return v, "href"
	}
	return "", ""
}

// EnsureDefs returns the root's <defs> child, creating one at position 0 when
// absent. Inlined subdocuments merge their defs into this element.
func EnsureDefs(root *etree.Element) *etree.Element {
	for _, child := range root.ChildElements() {
		if child.Tag == "defs" {
			return child
		}
	}
	defs := etree.NewElement(qualify(root, "defs"))
	root.InsertChildAt(0, defs)
	return defs
}

// NewGroup creates a <g> element carrying the given transform, using the same
// namespace prefix convention as the document root.
func NewGroup(root *etree.Element, transform string) *etree.Element {
	g := etree.NewElement(qualify(root, "g"))
	g.CreateAttr("transform", transform)
	return g
}

// qualify prefixes a local tag name the way the root element is prefixed, so
// created elements land in the SVG namespace either way.
func qualify(root *etree.Element, tag string) string {
	if root.Space != "" {
		return root.Space + ":" + tag
	}
	return tag
}

// WriteFile serializes the document to path with an XML declaration and no
// added indentation, preserving the source formatting of untouched regions.
func WriteFile(doc *etree.Document, path string) error {
	ensureDeclaration(doc)
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func ensureDeclaration(doc *etree.Document) {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	doc.InsertChildAt(0, &etree.ProcInst{
		Target: "xml",
		Inst:   `version="1.0" encoding="UTF-8"`,
	})
}

// IsSVGHref reports whether an href plausibly points at an SVG document.
func IsSVGHref(href string) bool {
	return strings.HasSuffix(strings.ToLower(href), ".svg")
}
