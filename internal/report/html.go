package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #1e293b; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { border: 1px solid #cbd5e1; padding: 0.25rem 0.6rem; text-align: left; }
th { background: #f1f5f9; }
</style>
</head>
<body>
`

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// WriteHTML renders the Markdown report as a standalone HTML page.
func WriteHTML(w io.Writer, d Data) error {
	var body bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(d)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if _, err := fmt.Fprintf(w, htmlHead, html.EscapeString("Lab inventory")); err != nil {
		return err
	}
	if _, err := body.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
