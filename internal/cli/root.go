// Package cli wires the labtracker commands.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pfassina/labtracker/internal/app"
	"github.com/pfassina/labtracker/internal/config"
	"github.com/pfassina/labtracker/internal/logging"
	"github.com/pfassina/labtracker/internal/session"
)

// New returns the root command. Without a subcommand it runs the TUI.
func New() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "labtracker",
		Short: "Track samples across the lab's fridge and cytomat units.",
		Long: `labtracker keeps an inventory of the cells of three storage units.
Cells hold a label, can be marked as out of the fridge and can be linked
into colored groups. Run without a command to open the interactive grid.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, o)
		},
	}
	o.addFlags(cmd)

	addServe(cmd, o)
	addPopulate(cmd, o)
	addReset(cmd, o)
	addGroups(cmd, o)
	addFind(cmd, o)
	addExport(cmd, o)
	addReport(cmd, o)
	addKeys(cmd)
	return cmd
}

func runTUI(cmd *cobra.Command, o *options) error {
	cfg, existed, err := o.load(cmd)
	if err != nil {
		return err
	}

	// First run: ask where to keep the inventory unless the flags said so.
	if !existed && !cmd.Flags().Changed("data-dir") {
		res, err := config.RunSetup()
		if err != nil {
			return fmt.Errorf("setup: %w", err)
		}
		if res.Cancelled {
			return nil
		}
		cfg.DataDir = res.DataDir
		cfg.Backend = res.Backend
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, closer, err := logging.OpenFile(cfg.DataDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	e, err := openEnv(cfg, logger, cfg.Watch)
	if err != nil {
		return err
	}
	defer e.Close()

	a := app.New(cfg, app.Deps{
		Inventory: e.inv,
		Layout:    cfg.Layout,
		Logger:    logger,
		Searcher:  e.searcher(),
		Backend:   string(cfg.Backend),
		State:     session.NewStore(cfg.DataDir),
	})
	defer a.Close()
	e.setErrorHandler(a.ReportError)
	e.start()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
