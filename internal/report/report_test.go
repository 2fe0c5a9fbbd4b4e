package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/layout"
	"github.com/pfassina/labtracker/internal/persist"
)

func testData(t *testing.T) Data {
	t.Helper()
	inv := inventory.New()
	a, b, c := cell.NewKey(cell.Left, 0, 0), cell.NewKey(cell.Main, 20, 9), cell.NewKey(cell.Middle, 1, 1)
	inv.SetText(a, "Culture | A")
	inv.SetText(b, "Strain X")
	inv.SetText(c, "<Buffer>")
	var sel inventory.Selection
	sel.Replace(a, b)
	inv.Link(&sel)
	inv.ToggleOutFridge(c)

	d := Collect(inv, layout.Default())
	d.Generated = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	return d
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(testData(t))

	for _, want := range []string{
		"# Lab inventory",
		"Generated 2024-05-01 09:30.",
		"## Cytomat5 (left)",
		"## Cytomat10 Hotel (main)",
		`| left-0-0 | Culture \| A | Group1 |  |`,
		`| middle-1-1 | \<Buffer> |  | yes |`,
		"| Group1 | #FFC928 (cat1) | 2 | left-0-0, main-20-9 |",
		"1 of 105 slots occupied.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q\n%s", want, out)
		}
	}
}

func TestRenderMarkdownNoGroups(t *testing.T) {
	d := Collect(inventory.New(), layout.Default())
	out := RenderMarkdown(d)
	if !strings.Contains(out, "No groups.") {
		t.Errorf("markdown = %s", out)
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, HTML, testData(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<!DOCTYPE html>", "<table>", "<td>Strain X</td>", "<td>&lt;Buffer", "</html>"} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, SVG, testData(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document: %.80s", out)
	}
	if !strings.Contains(out, "fill:#FFC928") {
		t.Error("group color not drawn")
	}
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("out-of-fridge cell not dashed")
	}
	if !strings.Contains(out, "&lt;Buffer&gt;") {
		t.Error("label not escaped")
	}
	if got := strings.Count(out, "<rect"); got != layout.Default().Size()+1 {
		t.Errorf("rects = %d, want %d", got, layout.Default().Size()+1)
	}
}

func TestWriteYAMLAndJSON(t *testing.T) {
	d := testData(t)

	var y bytes.Buffer
	if err := Write(&y, YAML, d); err != nil {
		t.Fatal(err)
	}
	var fromYAML persist.Blob
	if err := yaml.Unmarshal(y.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromYAML.LeftTable["left-0-0"].GroupName != "Group1" || fromYAML.NextGroupNumber != 2 {
		t.Errorf("yaml blob = %+v", fromYAML)
	}

	var j bytes.Buffer
	if err := Write(&j, JSON, d); err != nil {
		t.Fatal(err)
	}
	var fromJSON persist.Blob
	if err := json.Unmarshal(j.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if !fromJSON.MiddleTable["middle-1-1"].OutFridge {
		t.Errorf("json blob = %+v", fromJSON)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"markdown", Markdown, true},
		{"md", Markdown, true},
		{"svg", SVG, true},
		{"pdf", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}
