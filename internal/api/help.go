// ABOUTME: Serves the embedded API usage document at the root path
// ABOUTME: Markdown source is embedded and rendered to HTML once at startup

package api

import (
	"bytes"
	_ "embed"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed usage.md
var usageMarkdown []byte

var (
	renderOnce sync.Once
	usageHTML  []byte
	renderErr  error
)

const helpPagePrefix = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>shoresh API</title>
<style>
body { font-family: sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; }
code, pre { background: #f4f4f4; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.6rem; }
</style>
</head>
<body>
`

const helpPageSuffix = `
</body>
</html>
`

// handleHelp renders the embedded usage document. Rendering happens once;
// the result is cached for the process lifetime.
func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	renderOnce.Do(func() {
		md := goldmark.New(goldmark.WithExtensions(extension.GFM))
		var buf bytes.Buffer
		renderErr = md.Convert(usageMarkdown, &buf)
		usageHTML = buf.Bytes()
	})

	if renderErr != nil {
		s.logger.Error("rendering help page", "error", renderErr)
		http.Error(w, "help page unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(helpPagePrefix))
	w.Write(usageHTML)
	w.Write([]byte(helpPageSuffix))
}
