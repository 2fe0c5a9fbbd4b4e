package inventory

import (
	"strings"

	"github.com/pfassina/labtracker/internal/cell"
)

// LinkVerdict is the outcome of checking whether a selection may be linked.
type LinkVerdict int

const (
	LinkOK LinkVerdict = iota
	LinkTooFew
	LinkBlankCell
	LinkCrossGroup
	LinkNothingNew
)

func (v LinkVerdict) String() string {
	switch v {
	case LinkOK:
		return "ok"
	case LinkTooFew:
		return "select at least two cells"
	case LinkBlankCell:
		return "cannot link empty cells"
	case LinkCrossGroup:
		return "Cannot link cells from different groups!"
	case LinkNothingNew:
		return "cells are already linked"
	}
	return "unknown"
}

// LinkCheck decides whether keys may be linked. It never writes.
func (inv *Inventory) LinkCheck(keys []cell.Key) LinkVerdict {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	v, _, _ := inv.linkCheckLocked(keys)
	return v
}

// CanLink reports whether keys may be linked.
func (inv *Inventory) CanLink(keys []cell.Key) bool {
	return inv.LinkCheck(keys) == LinkOK
}

// linkCheckLocked also returns the identity of the one existing group the
// keys belong to, if any.
func (inv *Inventory) linkCheckLocked(keys []cell.Key) (LinkVerdict, string, string) {
	if len(keys) < 2 {
		return LinkTooFew, "", ""
	}
	var name, color string
	hasUnlinked := false
	for _, k := range keys {
		r := inv.reg.Get(k)
		if !r.HasContent() {
			return LinkBlankCell, "", ""
		}
		if !r.Linked {
			hasUnlinked = true
			continue
		}
		if name != "" && name != r.GroupName {
			return LinkCrossGroup, "", ""
		}
		name, color = r.GroupName, r.GroupColor
	}
	if !hasUnlinked {
		return LinkNothingNew, "", ""
	}
	return LinkOK, name, color
}

// CanEnterLinkMode reports whether link mode may start from the current
// selection: nothing selected yet, or a first cell with content. A larger
// selection must also stay within one group and hold an unlinked cell.
func (inv *Inventory) CanEnterLinkMode(sel *Selection) bool {
	k, ok := sel.First()
	if !ok {
		return true
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if !inv.reg.Get(k).HasContent() {
		return false
	}
	if sel.Len() < 2 {
		return true
	}
	group := ""
	hasUnlinked := false
	for _, sk := range sel.keys {
		r := inv.reg.Get(sk)
		if !r.Linked {
			hasUnlinked = true
			continue
		}
		if group != "" && group != r.GroupName {
			return false
		}
		group = r.GroupName
	}
	return hasUnlinked
}

// LinkDisabled reports whether k should be offered as a link candidate
// while link mode is active: blank cells and members of a group other than
// the selection's group are not.
func (inv *Inventory) LinkDisabled(sel *Selection, k cell.Key) bool {
	if !sel.LinkMode {
		return false
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	r := inv.reg.Get(k)
	if !r.HasContent() {
		return true
	}
	if !r.Linked {
		return false
	}
	for _, sk := range sel.keys {
		sr := inv.reg.Get(sk)
		if sr.Linked && sr.GroupName != r.GroupName {
			return true
		}
	}
	return false
}

// Link joins the selected cells into one group. When one of them already
// belongs to a group the others join it; otherwise a new group is
// allocated. On success the selection is cleared. A cross-group selection
// is also cleared so the caller can alert and start over.
func (inv *Inventory) Link(sel *Selection) (Change, LinkVerdict) {
	keys := sel.Keys()
	inv.mu.Lock()
	v, name, color := inv.linkCheckLocked(keys)
	if v != LinkOK {
		inv.mu.Unlock()
		if v == LinkCrossGroup {
			sel.Clear()
		}
		return Change{}, v
	}

	created := name == ""
	if created {
		for len(inv.reg.Tagged(inv.alloc.NextName())) > 0 {
			inv.alloc.AdvanceName()
		}
		name, color = inv.alloc.NextName(), inv.alloc.NextColor()
	}

	writes := make([]write, 0, len(keys))
	for _, k := range keys {
		writes = append(writes, write{k, cell.LinkPatch(name, color)})
	}
	ch := inv.applyLocked(ActionLink, name, writes)
	if created {
		inv.alloc.AdvanceColor()
		inv.alloc.AdvanceName()
	}
	sel.Clear()
	return inv.finish(ch), LinkOK
}

// UnlinkOne detaches the first selected cell from its group. A group left
// with a single member is dissolved entirely.
func (inv *Inventory) UnlinkOne(sel *Selection) Change {
	k, ok := sel.First()
	if !ok {
		return Change{}
	}
	inv.mu.Lock()
	r := inv.reg.Get(k)
	if !r.Linked {
		inv.mu.Unlock()
		return Change{}
	}

	members := inv.reg.Members(r.GroupName)
	targets := []cell.Key{k}
	if len(members) <= 2 {
		targets = members
	}
	p := cell.UnlinkPatch()
	p.State = ptrState(cell.StateRegular)
	writes := make([]write, 0, len(targets))
	for _, t := range targets {
		writes = append(writes, write{t, p})
	}
	ch := inv.applyLocked(ActionUnlink, r.GroupName, writes)
	sel.Clear()
	return inv.finish(ch)
}

// EraseOne resets the first selected cell to the empty default. Other
// members of its group are never touched, even if one is left alone.
// Erasing a cell that is already empty changes nothing.
func (inv *Inventory) EraseOne(sel *Selection) Change {
	k, ok := sel.First()
	if !ok {
		return Change{}
	}
	inv.mu.Lock()
	sel.Clear()
	r := inv.reg.Get(k)
	if r == cell.Empty() {
		inv.mu.Unlock()
		return Change{}
	}
	ch := inv.applyLocked(ActionErase, r.GroupName, []write{{k, cell.ResetPatch()}})
	return inv.finish(ch)
}

// UnlinkAllInGroup detaches every cell carrying name, keeping labels. It
// does nothing while a rename is in progress.
func (inv *Inventory) UnlinkAllInGroup(sel *Selection, name string) Change {
	return inv.groupWide(sel, name, ActionUnlinkGroup, cell.UnlinkPatch())
}

// DeleteAllInGroup resets every cell carrying name to the empty default.
// It does nothing while a rename is in progress.
func (inv *Inventory) DeleteAllInGroup(sel *Selection, name string) Change {
	return inv.groupWide(sel, name, ActionDeleteGroup, cell.ResetPatch())
}

func (inv *Inventory) groupWide(sel *Selection, name string, action Action, p cell.Patch) Change {
	if name == "" || sel.Renaming {
		return Change{}
	}
	inv.mu.Lock()
	keys := inv.reg.Tagged(name)
	writes := make([]write, 0, len(keys))
	for _, k := range keys {
		writes = append(writes, write{k, p})
	}
	ch := inv.applyLocked(action, name, writes)
	if sel.Group == name {
		sel.Group = ""
	}
	return inv.finish(ch)
}

// SetText changes the label of k. Clearing the label erases the cell.
func (inv *Inventory) SetText(k cell.Key, text string) Change {
	inv.mu.Lock()
	r := inv.reg.Get(k)
	blank := strings.TrimSpace(text) == ""
	if r.Text == text || (blank && r == cell.Empty()) {
		inv.mu.Unlock()
		return Change{}
	}
	var ch Change
	if blank {
		ch = inv.applyLocked(ActionErase, r.GroupName, []write{{k, cell.ResetPatch()}})
	} else {
		ch = inv.applyLocked(ActionEdit, r.GroupName, []write{{k, cell.TextPatch(text)}})
	}
	return inv.finish(ch)
}

// ToggleOutFridge flips the checked-out flag of a cell with content.
func (inv *Inventory) ToggleOutFridge(k cell.Key) Change {
	inv.mu.Lock()
	r := inv.reg.Get(k)
	if !r.HasContent() {
		inv.mu.Unlock()
		return Change{}
	}
	ch := inv.applyLocked(ActionOutFridge, r.GroupName, []write{{k, cell.OutFridgePatch(!r.OutFridge)}})
	return inv.finish(ch)
}

// RenameVerdict is the outcome of a group rename.
type RenameVerdict int

const (
	RenameOK RenameVerdict = iota
	RenameBlank
	RenameTaken
	RenameUnknown
	RenameUnchanged
)

func (v RenameVerdict) String() string {
	switch v {
	case RenameOK:
		return "ok"
	case RenameBlank:
		return "group name cannot be blank"
	case RenameTaken:
		return "group name already in use"
	case RenameUnknown:
		return "no such group"
	case RenameUnchanged:
		return "name unchanged"
	}
	return "unknown"
}

// RenameGroup gives every member of group old the name newName. The
// selection's renaming flag is cleared once the rename is decided.
func (inv *Inventory) RenameGroup(sel *Selection, old, newName string) (Change, RenameVerdict) {
	defer func() { sel.Renaming = false }()
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return Change{}, RenameBlank
	}
	if newName == old {
		return Change{}, RenameUnchanged
	}
	inv.mu.Lock()
	keys := inv.reg.Tagged(old)
	if len(keys) == 0 {
		inv.mu.Unlock()
		return Change{}, RenameUnknown
	}
	if len(inv.reg.Tagged(newName)) > 0 {
		inv.mu.Unlock()
		return Change{}, RenameTaken
	}
	writes := make([]write, 0, len(keys))
	for _, k := range keys {
		writes = append(writes, write{k, cell.RenamePatch(newName)})
	}
	ch := inv.applyLocked(ActionRename, old, writes)
	if sel.Group == old {
		sel.Group = newName
	}
	return inv.finish(ch), RenameOK
}

// SelectedCellData returns the record of the first selected key.
func (inv *Inventory) SelectedCellData(sel *Selection) (cell.Key, cell.Record, bool) {
	k, ok := sel.First()
	if !ok {
		return cell.Key{}, cell.Record{}, false
	}
	return k, inv.Get(k), true
}

func ptrState(s cell.State) *cell.State { return &s }
