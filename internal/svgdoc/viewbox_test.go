package svgdoc

import (
	"strings"
	"testing"
)

func TestParseViewBox(t *testing.T) {
	cases := []struct {
		in      string
		want    ViewBox
		wantErr bool
	}{
		{"0 0 100 50", ViewBox{0, 0, 100, 50}, false},
		{"10,20,300,400", ViewBox{10, 20, 300, 400}, false},
		{" -5  -5\t210 297 ", ViewBox{-5, -5, 210, 297}, false},
		{"0 0 100", ViewBox{}, true},
		{"0 0 abc 50", ViewBox{}, true},
		{"0 0 0 50", ViewBox{}, true},
		{"0 0 100 -1", ViewBox{}, true},
	}
	for _, tc := range cases {
		got, err := ParseViewBox(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseViewBox(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseViewBox(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseViewBox(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestDocumentViewBox_FallsBackToWidthHeight(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" width="64px" height="32"/>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vb, fellBack := DocumentViewBox(doc.Root())
	if fellBack {
		t.Error("width/height attributes should not count as a fallback")
	}
	if vb.Width != 64 || vb.Height != 32 || vb.MinX != 0 || vb.MinY != 0 {
		t.Errorf("unexpected viewBox %+v", vb)
	}
}

func TestDocumentViewBox_InvalidUsesDefault(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="1 2 3"/>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vb, fellBack := DocumentViewBox(doc.Root())
	if !fellBack {
		t.Error("expected fallback for a 3-number viewBox")
	}
	if vb.Width != fallbackSize || vb.Height != fallbackSize {
		t.Errorf("expected %dx%d fallback, got %+v", fallbackSize, fallbackSize, vb)
	}
}

func TestAttrFloat(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"><image x="12.5" width="bogus"/></svg>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := Images(doc.Root())[0]
	if got := AttrFloat(img, "x", 0); got != 12.5 {
		t.Errorf("expected 12.5, got %v", got)
	}
	if got := AttrFloat(img, "y", 7); got != 7 {
		t.Errorf("expected default 7, got %v", got)
	}
	if got := AttrFloat(img, "width", 3); got != 3 {
		t.Errorf("expected default 3 for malformed value, got %v", got)
	}
}
