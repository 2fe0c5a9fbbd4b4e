package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/pfassina/labtracker/internal/report"
)

func addExport(topLevel *cobra.Command, o *options) {
	var (
		format string
		output string
	)

	formats := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		formats[i] = string(f)
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory.",
		Long: fmt.Sprintf(`Export the inventory as a report or a raw snapshot.

Formats: %s. The yaml and json formats hold the stored state and can be
read back by the json backend.`, strings.Join(formats, ", ")),
		Example: `
labtracker export --format html -o inventory.html
labtracker export --format svg > fridge.svg
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			return o.withEnv(cmd, func(e *env) error {
				d := report.Collect(e.inv, e.cfg.Layout)
				if output == "" || output == "-" {
					return report.Write(cmd.OutOrStdout(), f, d)
				}

				var buf bytes.Buffer
				if err := report.Write(&buf, f, d); err != nil {
					return err
				}
				if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				e.logger.Info("exported", "format", f, "path", output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(report.Markdown), "export format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	topLevel.AddCommand(cmd)
}

func addReport(topLevel *cobra.Command, o *options) {
	var (
		style string
		width int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the inventory report in the terminal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withEnv(cmd, func(e *env) error {
				md := report.RenderMarkdown(report.Collect(e.inv, e.cfg.Layout))
				return renderMarkdown(cmd.OutOrStdout(), md, style, width)
			})
		},
	}
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style: dark, light, notty or ascii")
	cmd.Flags().IntVar(&width, "width", 100, "word wrap width")

	topLevel.AddCommand(cmd)
}

func renderMarkdown(w io.Writer, md, style string, width int) error {
	r, err := glamour.NewTermRenderer(
		// WithAutoStyle can block on terminal queries; the style is a flag instead.
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
