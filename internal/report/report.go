// Package report renders the inventory for export: Markdown, HTML, SVG,
// YAML and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/layout"
	"github.com/pfassina/labtracker/internal/persist"
)

// Format is an export format.
type Format string

const (
	Markdown Format = "markdown"
	HTML     Format = "html"
	SVG      Format = "svg"
	YAML     Format = "yaml"
	JSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{Markdown, HTML, SVG, YAML, JSON}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	if s == "md" {
		return Markdown, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Data is everything a report needs.
type Data struct {
	Layout    layout.Layout
	Records   map[cell.Key]cell.Record
	Groups    []inventory.Group
	Blob      persist.Blob
	Generated time.Time
}

// Collect snapshots inv for reporting.
func Collect(inv *inventory.Inventory, lay layout.Layout) Data {
	return Data{
		Layout:    lay,
		Records:   inv.Records(),
		Groups:    inv.Groups(),
		Blob:      inv.Blob(),
		Generated: time.Now(),
	}
}

// Filled returns the keys of unit u that have content, in layout order.
func (d Data) Filled(u layout.Unit) []cell.Key {
	var keys []cell.Key
	for _, k := range u.Keys() {
		if d.Records[k].HasContent() {
			keys = append(keys, k)
		}
	}
	return keys
}

// Write renders d in format f to w.
func Write(w io.Writer, f Format, d Data) error {
	switch f {
	case Markdown:
		_, err := io.WriteString(w, RenderMarkdown(d))
		return err
	case HTML:
		return WriteHTML(w, d)
	case SVG:
		WriteSVG(w, d)
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.Blob); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d.Blob)
	}
	return fmt.Errorf("unknown format %q", f)
}
