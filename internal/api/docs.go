package api

import (
	"bytes"
	_ "embed"
	"net/http"

	"github.com/yuin/goldmark"
)

//go:embed usage.md
var usageMarkdown []byte

const docsShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>svgpress</title>
<style>body{font-family:sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem;line-height:1.5}
pre{background:#f4f4f4;padding:.75rem;overflow-x:auto}code{background:#f4f4f4}</style>
</head>
<body>
`

// handleDocs renders the embedded usage document.
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	buf.WriteString(docsShell)
	md := goldmark.New()
	if err := md.Convert(usageMarkdown, &buf); err != nil {
		http.Error(w, "failed to render documentation", http.StatusInternalServerError)
		return
	}
	buf.WriteString("</body>\n</html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
