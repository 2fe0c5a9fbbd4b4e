package inventory

import (
	"math/rand/v2"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/layout"
)

var sampleTexts = []string{
	"Sample 1", "Sample 2", "Sample 3", "Sample 4", "Sample 5",
	"Test A", "Test B", "Test C", "Test D", "Test E",
	"Control X", "Control Y", "Control Z",
	"Experiment 1", "Experiment 2", "Experiment 3",
	"Culture A", "Culture B", "Culture C",
	"Strain X", "Strain Y", "Strain Z",
	"Media 1", "Media 2", "Media 3",
	"Buffer A", "Buffer B", "Buffer C",
	"Reagent 1", "Reagent 2", "Reagent 3",
	"Solution X", "Solution Y", "Solution Z",
}

const (
	populateFill      = 0.7
	populateGroups    = 30
	populateGroupSize = 3
)

// PopulateStats summarizes a Populate run.
type PopulateStats struct {
	Total    int
	Filled   int
	Grouped  int
	Groups   int
	Unlinked int
}

// Populate replaces the state with sample data: 70% of the slots of lay
// get a label and up to 30 groups of three are formed from them, one
// palette color each. The allocator continues after the last group.
func (inv *Inventory) Populate(lay layout.Layout, rng *rand.Rand) (Change, PopulateStats) {
	all := lay.Keys()
	fill := int(float64(len(all)) * populateFill)

	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	chosen := all[:fill]
	rng.Shuffle(len(chosen), func(i, j int) { chosen[i], chosen[j] = chosen[j], chosen[i] })

	inv.mu.Lock()
	palette := inv.alloc.Palette()
	groups := min(populateGroups, len(palette), len(chosen)/populateGroupSize)
	grouped := groups * populateGroupSize

	ch := Change{Action: ActionPopulate}
	seen := map[cell.Key]bool{}
	inv.reg.Each(func(k cell.Key, r cell.Record) {
		ch.Before = append(ch.Before, Snapshot{Key: k, Record: r, Present: true})
		seen[k] = true
	})
	for _, k := range chosen {
		if !seen[k] {
			ch.Before = append(ch.Before, Snapshot{Key: k})
		}
	}

	inv.reg.Reset()
	inv.alloc.Reset()
	for g := 0; g < groups; g++ {
		name, color := inv.alloc.NextName(), inv.alloc.NextColor()
		for _, k := range chosen[g*populateGroupSize : (g+1)*populateGroupSize] {
			inv.reg.Put(k, cell.Record{
				Text:       sampleTexts[rng.IntN(len(sampleTexts))],
				State:      cell.StateRegular,
				Linked:     true,
				GroupName:  name,
				GroupColor: color,
			})
		}
		inv.alloc.AdvanceColor()
		inv.alloc.AdvanceName()
	}
	for _, k := range chosen[grouped:] {
		inv.reg.Put(k, cell.Record{
			Text:  sampleTexts[rng.IntN(len(sampleTexts))],
			State: cell.StateRegular,
		})
	}

	stats := PopulateStats{
		Total:    len(all),
		Filled:   fill,
		Grouped:  grouped,
		Groups:   groups,
		Unlinked: fill - grouped,
	}
	inv.logger.Info("populated sample data", "filled", stats.Filled, "groups", stats.Groups, "unlinked", stats.Unlinked)
	return inv.finish(ch), stats
}
