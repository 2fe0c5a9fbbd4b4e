package report

import (
	"fmt"
	"strings"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/theme"
)

// RenderMarkdown returns a per-unit table of occupied cells followed by a
// group summary.
func RenderMarkdown(d Data) string {
	var b strings.Builder

	b.WriteString("# Lab inventory\n\n")
	if !d.Generated.IsZero() {
		fmt.Fprintf(&b, "Generated %s.\n\n", d.Generated.Format("2006-01-02 15:04"))
	}

	for _, u := range d.Layout.Units {
		keys := d.Filled(u)
		fmt.Fprintf(&b, "## %s (%s)\n\n", u.Name, u.ID)
		fmt.Fprintf(&b, "%d of %d slots occupied.\n\n", len(keys), u.Size())
		if len(keys) == 0 {
			continue
		}
		b.WriteString("| Cell | Label | Group | Out |\n")
		b.WriteString("|------|-------|-------|-----|\n")
		for _, k := range keys {
			r := d.Records[k]
			out := ""
			if r.OutFridge {
				out = "yes"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", k, escape(r.Text), escape(r.GroupName), out)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Groups\n\n")
	if len(d.Groups) == 0 {
		b.WriteString("No groups.\n")
		return b.String()
	}
	b.WriteString("| Group | Color | Cells | Members |\n")
	b.WriteString("|-------|-------|-------|---------|\n")
	for _, g := range d.Groups {
		color := g.Color
		if name := theme.ColorName(g.Color); name != "" {
			color = fmt.Sprintf("%s (%s)", g.Color, name)
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", escape(g.Name), color, g.Size(), joinKeys(g.Keys))
	}
	return b.String()
}

func joinKeys(keys []cell.Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}

var mdEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "*", `\*`, "_", `\_`, "<", `\<`)

func escape(s string) string {
	return mdEscaper.Replace(s)
}
