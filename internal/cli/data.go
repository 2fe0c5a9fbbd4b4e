package cli

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var errAborted = errors.New("aborted")

// confirm asks a yes/no question unless yes is already set.
func confirm(yes bool, question string) error {
	if yes {
		return nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}

func addPopulate(topLevel *cobra.Command, o *options) {
	var (
		seed uint64
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Replace the inventory with sample data.",
		Long: `Replace the inventory with sample data: 70% of the cells get a label
and up to 30 groups of three are formed from them.`,
		Example: `
labtracker populate --yes
labtracker populate --seed 42
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(yes, "Replace the whole inventory with sample data?"); err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			return o.withEnv(cmd, func(e *env) error {
				_, stats := e.inv.Populate(e.cfg.Layout, rand.New(rand.NewPCG(seed, seed)))
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "filled %d of %d cells, %d groups (%d cells grouped)\n",
					stats.Filled, stats.Total, stats.Groups, stats.Grouped)
				return err
			})
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible data")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	topLevel.AddCommand(cmd)
}

func addReset(topLevel *cobra.Command, o *options) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase every cell and group.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(yes, "Erase every cell and group?"); err != nil {
				return err
			}
			return o.withEnv(cmd, func(e *env) error {
				ch := e.inv.Reset()
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "erased %d cells\n", len(ch.Before))
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	topLevel.AddCommand(cmd)
}
