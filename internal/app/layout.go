package app

// Layout computes the dimensions for each panel.
type Layout struct {
	GroupsWidth  int
	GridWidth    int
	InfoWidth    int
	Height       int
	StatusHeight int
}

// ComputeLayout calculates panel dimensions based on total width/height
// and whether each side panel is visible.
func ComputeLayout(totalWidth, totalHeight int, showGroups, showInfo bool, groupsWidth, infoWidth int) Layout {
	// During live resizes some terminals momentarily report 0 (or even negative)
	// dimensions; clamp to avoid propagating invalid sizes into panels.
	totalWidth = max(totalWidth, 1)
	totalHeight = max(totalHeight, 2) // one content row plus the status bar

	l := Layout{
		StatusHeight: 1,
		Height:       totalHeight - 1,
	}

	remaining := totalWidth

	// Side panels never take more than a quarter of the width each; the
	// grid needs the rest for three units side by side.
	if showGroups {
		l.GroupsWidth = min(groupsWidth, remaining/4)
		remaining -= l.GroupsWidth
	}
	if showInfo {
		l.InfoWidth = min(infoWidth, remaining/4)
		remaining -= l.InfoWidth
	}

	l.GridWidth = max(remaining, 1)
	return l
}
