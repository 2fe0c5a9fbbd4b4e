package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/config"
	"github.com/pfassina/labtracker/internal/panel"
	"github.com/pfassina/labtracker/internal/theme"
)

const findLimit = 50

func addGroups(topLevel *cobra.Command, o *options) {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List the groups and their members.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withEnv(cmd, func(e *env) error {
				out := cmd.OutOrStdout()
				groups := e.inv.Groups()
				if len(groups) == 0 {
					_, err := fmt.Fprintln(out, "no groups")
					return err
				}

				bold := color.New(color.Bold)
				tbl := uitable.New()
				tbl.Separator = "  "
				tbl.MaxColWidth = 80
				tbl.Wrap = true
				tbl.AddRow(bold.Sprint("Group"), bold.Sprint("Color"), bold.Sprint("Cells"), bold.Sprint("Members"))
				for _, g := range groups {
					keys := make([]string, len(g.Keys))
					for i, k := range g.Keys {
						keys[i] = k.String()
					}
					tbl.AddRow(g.Name, theme.ColorName(g.Color), g.Size(), strings.Join(keys, " "))
				}
				tbl.RightAlign(2)
				_, err := fmt.Fprintln(out, tbl)
				return err
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addFind(topLevel *cobra.Command, o *options) {
	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Find cells by label.",
		Long: `Find cells by label. The sqlite backend answers from its full-text
index; the other backends fuzzy-match the labels.`,
		Example: `
labtracker find buffer
labtracker find "control x"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return o.withEnv(cmd, func(e *env) error {
				items, err := findCells(e, query)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					_, err := fmt.Fprintf(out, "no cells match %q\n", query)
					return err
				}

				bold := color.New(color.Bold)
				tbl := uitable.New()
				tbl.Separator = "  "
				tbl.AddRow(bold.Sprint("Cell"), bold.Sprint("Label"), bold.Sprint("Group"))
				for _, it := range items {
					tbl.AddRow(it.Key.String(), it.Title, it.Extra)
				}
				_, err = fmt.Fprintln(out, tbl)
				return err
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func findCells(e *env, query string) ([]panel.FinderItem, error) {
	if s := e.searcher(); s != nil {
		hits, err := s.Search(query, findLimit)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		items := make([]panel.FinderItem, 0, len(hits))
		for _, h := range hits {
			k, err := cell.ParseKey(h.Key)
			if err != nil {
				continue
			}
			items = append(items, panel.FinderItem{Title: h.Text, Key: k, Extra: h.GroupName})
		}
		return items, nil
	}

	var items []panel.FinderItem
	e.inv.Each(func(k cell.Key, r cell.Record) {
		if r.HasContent() {
			items = append(items, panel.FinderItem{Title: r.Text, Key: k, Extra: r.GroupName})
		}
	})
	items = panel.FuzzyFilter(items, query)
	if len(items) > findLimit {
		items = items[:findLimit]
	}
	return items, nil
}

func addKeys(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the key bindings of the grid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			bold := color.New(color.Bold, color.Underline)

			section := func(title string, binds []config.Keybind) error {
				tbl := uitable.New()
				tbl.Separator = "  "
				for _, kb := range binds {
					tbl.AddRow(kb.Sequence, strings.ReplaceAll(kb.Action, "_", " "))
				}
				tbl.RightAlign(0)
				_, err := fmt.Fprintf(out, "\n%s\n%s\n", bold.Sprint(title), tbl)
				return err
			}
			if err := section("Grid", config.GridKeybinds()); err != nil {
				return err
			}
			return section("Leader", config.DefaultKeybinds())
		},
	}

	topLevel.AddCommand(cmd)
}
