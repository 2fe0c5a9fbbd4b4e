package cell

import "strings"

// State is the display state of a cell. Only StateEmpty and StateRegular are
// ever persisted; the rest are computed per render by Display.
type State string

const (
	StateEmpty         State = "empty"
	StateRegular       State = "regular"
	StateHover         State = "hover"
	StateSelected      State = "selected"
	StateHoverSelected State = "hover-selected"
	StateRenaming      State = "renaming"
	StateEditing       State = "editing"
	StateLoading       State = "loading"
)

// Record is the value stored for a cell key.
type Record struct {
	Text       string `json:"text" yaml:"text"`
	State      State  `json:"state,omitempty" yaml:"state,omitempty"`
	Linked     bool   `json:"linked" yaml:"linked"`
	GroupName  string `json:"groupName" yaml:"groupName,omitempty"`
	GroupColor string `json:"groupColor" yaml:"groupColor,omitempty"`
	OutFridge  bool   `json:"outFridge" yaml:"outFridge"`
}

// Empty returns the default record of a cell that holds nothing.
func Empty() Record {
	return Record{State: StateEmpty}
}

// HasContent reports whether the cell carries a non-blank label.
func (r Record) HasContent() bool {
	return strings.TrimSpace(r.Text) != ""
}

// Base returns the persisted base state: regular when the cell has content.
func (r Record) Base() State {
	if r.HasContent() {
		return StateRegular
	}
	return StateEmpty
}

// Consistent reports whether linked, groupName and groupColor agree.
func (r Record) Consistent() bool {
	return r.Linked == (r.GroupName != "") && r.Linked == (r.GroupColor != "")
}

// Normalize forces a record into a persistable shape: the state is its
// base, and half-linked or blank records are unlinked.
func (r Record) Normalize() Record {
	if !r.Consistent() || !r.HasContent() {
		r.Linked = false
		r.GroupName = ""
		r.GroupColor = ""
	}
	r.State = r.Base()
	return r
}

// Patch is a partial record; nil fields are left untouched by Apply.
type Patch struct {
	Text       *string
	State      *State
	Linked     *bool
	GroupName  *string
	GroupColor *string
	OutFridge  *bool
}

// Apply merges the non-nil fields of p into r.
func (p Patch) Apply(r Record) Record {
	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.State != nil {
		r.State = *p.State
	}
	if p.Linked != nil {
		r.Linked = *p.Linked
	}
	if p.GroupName != nil {
		r.GroupName = *p.GroupName
	}
	if p.GroupColor != nil {
		r.GroupColor = *p.GroupColor
	}
	if p.OutFridge != nil {
		r.OutFridge = *p.OutFridge
	}
	return r
}

func ptr[T any](v T) *T { return &v }

// LinkPatch attaches a cell to a group.
func LinkPatch(name, color string) Patch {
	return Patch{
		Linked:     ptr(true),
		GroupName:  ptr(name),
		GroupColor: ptr(color),
		State:      ptr(StateRegular),
	}
}

// UnlinkPatch detaches a cell from its group, keeping its label.
func UnlinkPatch() Patch {
	return Patch{
		Linked:     ptr(false),
		GroupName:  ptr(""),
		GroupColor: ptr(""),
	}
}

// ResetPatch returns a cell to the empty default.
func ResetPatch() Patch {
	return Patch{
		Text:       ptr(""),
		Linked:     ptr(false),
		GroupName:  ptr(""),
		GroupColor: ptr(""),
		OutFridge:  ptr(false),
		State:      ptr(StateEmpty),
	}
}

// TextPatch sets the label and the matching base state.
func TextPatch(text string) Patch {
	st := StateEmpty
	if strings.TrimSpace(text) != "" {
		st = StateRegular
	}
	return Patch{Text: ptr(text), State: ptr(st)}
}

// OutFridgePatch sets the checked-out flag.
func OutFridgePatch(out bool) Patch {
	return Patch{OutFridge: ptr(out)}
}

// RenamePatch moves a linked cell to another group name.
func RenamePatch(name string) Patch {
	return Patch{GroupName: ptr(name)}
}
