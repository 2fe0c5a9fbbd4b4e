package report

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/layout"
)

const (
	svgCellW   = 90
	svgCellH   = 22
	svgGap     = 40
	svgMargin  = 20
	svgHeading = 28
	svgMaxText = 12
)

// WriteSVG draws each unit as a grid. Linked cells are filled with their
// group color and checked-out cells get a dashed border.
func WriteSVG(w io.Writer, d Data) {
	width := svgMargin
	height := 0
	for _, u := range d.Layout.Units {
		width += u.Columns*svgCellW + svgGap
		if h := u.MaxRows() * svgCellH; h > height {
			height = h
		}
	}
	height += 2*svgMargin + svgHeading

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title("Lab inventory")
	canvas.Rect(0, 0, width, height, "fill:#ffffff")

	x := svgMargin
	for _, u := range d.Layout.Units {
		drawUnit(canvas, d, u, x, svgMargin)
		x += u.Columns*svgCellW + svgGap
	}
	canvas.End()
}

func drawUnit(canvas *svg.SVG, d Data, u layout.Unit, x0, y0 int) {
	canvas.Text(x0, y0+14, fmt.Sprintf("%s (%s)", u.Name, u.ID), "font-family:sans-serif;font-size:14px;font-weight:bold;fill:#1e293b")
	top := y0 + svgHeading
	canvas.Gstyle("font-family:sans-serif;font-size:11px")
	for c := 0; c < u.Columns; c++ {
		for r := 0; r < u.RowsIn(c); r++ {
			k := cell.NewKey(u.ID, r, c)
			rec := d.Records[k]
			x, y := x0+c*svgCellW, top+r*svgCellH
			canvas.Rect(x, y, svgCellW-2, svgCellH-2, cellStyle(rec))
			if rec.HasContent() {
				canvas.Text(x+4, y+14, clip(rec.Text, svgMaxText), "fill:#1e293b")
			}
		}
	}
	canvas.Gend()
}

func cellStyle(r cell.Record) string {
	fill := "#f8fafc"
	if r.HasContent() {
		fill = "#e2e8f0"
	}
	if r.Linked && r.GroupColor != "" {
		fill = r.GroupColor
	}
	style := "fill:" + fill + ";stroke:#94a3b8;stroke-width:1"
	if r.OutFridge {
		style += ";stroke:#334155;stroke-dasharray:4 2"
	}
	return style
}

func clip(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
