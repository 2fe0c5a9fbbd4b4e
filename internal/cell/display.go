package cell

// Context is the interaction state layered on top of a persisted record
// when it is rendered.
type Context struct {
	Hovered       bool
	Selected      bool
	Renaming      bool
	Editing       bool
	Loading       bool
	GroupHover    bool
	Disabled      bool
	SelectedGroup bool
}

// Display computes the render state of a record under the given context.
// Nothing here is stored; it is recomputed on every render.
func Display(r Record, ctx Context) State {
	switch {
	case ctx.Loading:
		return StateLoading
	case ctx.Editing:
		return StateEditing
	case ctx.Renaming:
		return StateRenaming
	case ctx.Hovered && ctx.Selected:
		return StateHoverSelected
	case ctx.Selected:
		return StateSelected
	case ctx.Hovered:
		// Hovering an empty cell keeps it visually empty.
		if !r.HasContent() {
			return StateEmpty
		}
		return StateHover
	}
	return r.Base()
}

// Presentation is everything the renderer needs to style a cell.
type Presentation struct {
	State           State
	Linked          bool
	OutFridge       bool
	GroupHover      bool
	IsSelected      bool
	IsDisabled      bool
	IsSelectedGroup bool
	IsEditing       bool
	GroupColor      string
}

// Present combines a record and its interaction context into a Presentation.
func Present(r Record, ctx Context) Presentation {
	return Presentation{
		State:           Display(r, ctx),
		Linked:          r.Linked,
		OutFridge:       r.OutFridge,
		GroupHover:      ctx.GroupHover,
		IsSelected:      ctx.Selected,
		IsDisabled:      ctx.Disabled,
		IsSelectedGroup: ctx.SelectedGroup,
		IsEditing:       ctx.Editing,
		GroupColor:      r.GroupColor,
	}
}
