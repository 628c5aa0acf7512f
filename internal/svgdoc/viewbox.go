package svgdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ViewBox is an SVG viewBox: origin offset plus user-unit dimensions.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// fallbackSize is used when a document declares neither a usable viewBox nor
// numeric width/height attributes, mirroring the behavior of the original
// Inkscape-based workflow.
const fallbackSize = 100

// ParseViewBox parses a viewBox attribute value. Both whitespace and comma
// separators are accepted.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	})
	parts := fields[:0]
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	if len(parts) != 4 {
		return ViewBox{}, fmt.Errorf("viewBox %q: expected 4 numbers, got %d", s, len(parts))
	}
	var nums [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("viewBox %q: %w", s, err)
		}
		nums[i] = v
	}
	vb := ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}, fmt.Errorf("viewBox %q: non-positive dimensions", s)
	}
	return vb, nil
}

// DocumentViewBox determines the effective viewBox of an SVG root element:
// the viewBox attribute when present and well-formed, otherwise the width and
// height attributes, otherwise a 100x100 fallback. The second return reports
// whether a fallback (or repair) was applied.
func DocumentViewBox(root *etree.Element) (ViewBox, bool) {
	if s := root.SelectAttrValue("viewBox", ""); s != "" {
		vb, err := ParseViewBox(s)
		if err == nil {
			return vb, false
		}
		return ViewBox{Width: fallbackSize, Height: fallbackSize}, true
	}

	w, wok := parseLength(root.SelectAttrValue("width", ""))
	h, hok := parseLength(root.SelectAttrValue("height", ""))
	if wok && hok && w > 0 && h > 0 {
		return ViewBox{Width: w, Height: h}, false
	}
	return ViewBox{Width: fallbackSize, Height: fallbackSize}, true
}

// parseLength parses a width/height attribute, tolerating a px unit suffix.
// Other units are left to Inkscape's plain-SVG normalization.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AttrFloat reads a numeric attribute with a default, ignoring malformed
// values.
func AttrFloat(el *etree.Element, key string, def float64) float64 {
	s := el.SelectAttrValue(key, "")
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	if err != nil {
		return def
	}
	return v
}
