package inliner

import (
	"strconv"
	"strings"
)

// ComposeTransform builds the transform for a group replacing an <image>
// element. Order matters: any transform the image already carried applies
// first, then the move to the image's position, the scale from viewBox units
// to the image box, and finally the compensation for the viewBox origin.
func ComposeTransform(existing string, x, y, scaleX, scaleY, minX, minY float64) string {
	parts := make([]string, 0, 4)
	if existing != "" {
		parts = append(parts, existing)
	}
	parts = append(parts,
		"translate("+fmtNum(x)+","+fmtNum(y)+")",
		"scale("+fmtNum(scaleX)+","+fmtNum(scaleY)+")",
		"translate("+fmtNum(-minX)+","+fmtNum(-minY)+")",
	)
	return strings.Join(parts, " ")
}

func fmtNum(v float64) string {
	if v == 0 {
		return "0" // avoids "-0" from negated zero origins
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
