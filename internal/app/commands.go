package app

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/inventory"
	"github.com/pfassina/labtracker/internal/panel"
	"github.com/pfassina/labtracker/internal/toast"
)

const finderLimit = 50

func (a *App) handleGridAction(msg panel.GridActionMsg) tea.Cmd {
	switch msg.Action {
	case panel.ActSelect:
		a.SelectCell(msg.Key)
	case panel.ActEdit:
		a.StartEdit(msg.Key)
	case panel.ActLink:
		return a.LinkAction()
	case panel.ActUnlink:
		return a.UnlinkCells()
	case panel.ActErase:
		return a.EraseCells()
	case panel.ActOutFridge:
		return a.ToggleOutFridge()
	case panel.ActSelectGroup:
		a.SelectGroup(a.inv.Get(msg.Key).GroupName)
	case panel.ActUnlinkGroup:
		return a.UnlinkGroup(a.targetGroup())
	case panel.ActDeleteGroup:
		a.ConfirmDeleteGroup(a.targetGroup())
	case panel.ActRenameGroup:
		a.StartRename(a.targetGroup())
	case panel.ActYank:
		return a.Yank()
	case panel.ActClear:
		a.sel.Reset()
		a.status.ClearError()
	}
	return nil
}

// SelectCell toggles k in link mode. Outside link mode k becomes the whole
// selection, or the selection is cleared when k was its only member.
func (a *App) SelectCell(k cell.Key) {
	if a.sel.LinkMode {
		if !a.sel.Has(k) && a.inv.LinkDisabled(&a.sel, k) {
			a.status.SetError("cannot add " + k.String() + " to this link")
			return
		}
		a.sel.Toggle(k)
		return
	}
	if a.sel.Len() == 1 && a.sel.Has(k) {
		a.sel.Clear()
		return
	}
	a.sel.Replace(k)
}

// LinkAction enters link mode, or links the selection when link mode is
// already on.
func (a *App) LinkAction() tea.Cmd {
	if !a.sel.LinkMode {
		cur := a.grid.Cursor()
		if a.sel.Len() == 0 && a.inv.Get(cur).HasContent() {
			a.sel.Add(cur)
		}
		if !a.inv.CanEnterLinkMode(&a.sel) {
			a.status.SetError("link mode needs a labelled first cell")
			return nil
		}
		a.sel.LinkMode = true
		a.sel.GroupMode = false
		return nil
	}

	ch, v := a.inv.Link(&a.sel)
	switch v {
	case inventory.LinkOK:
		a.sel.LinkMode = false
		a.notifyChange(ch, fmt.Sprintf("Linked %s into %s", cells(len(ch.Before)), ch.Group))
	case inventory.LinkCrossGroup:
		a.sel.LinkMode = false
		a.pendingPrompt = promptAction{kind: "alert"}
		a.prompt.ShowAlert(v.String())
	default:
		a.status.SetError(v.String())
	}
	return nil
}

// CancelLink leaves link mode and drops the selection.
func (a *App) CancelLink() {
	a.sel.LinkMode = false
	a.sel.Clear()
}

// target makes sure the selection names a cell, falling back to the cursor.
func (a *App) target() cell.Key {
	if k, ok := a.sel.First(); ok {
		return k
	}
	k := a.grid.Cursor()
	a.sel.Replace(k)
	return k
}

func (a *App) UnlinkCells() tea.Cmd {
	k := a.target()
	name := a.inv.Get(k).GroupName
	ch := a.inv.UnlinkOne(&a.sel)
	a.sel.Clear()
	if ch.Empty() {
		a.status.SetError(k.String() + " is not linked")
		return nil
	}
	msg := "Unlinked " + k.String() + " from " + name
	if len(ch.Before) > 1 {
		msg = "Dissolved " + name
	}
	a.notifyChange(ch, msg)
	return nil
}

func (a *App) EraseCells() tea.Cmd {
	k := a.target()
	ch := a.inv.EraseOne(&a.sel)
	a.notifyChange(ch, "Erased "+k.String())
	return nil
}

func (a *App) ToggleOutFridge() tea.Cmd {
	k := a.grid.Cursor()
	ch := a.inv.ToggleOutFridge(k)
	if ch.Empty() {
		return nil
	}
	if a.inv.Get(k).OutFridge {
		a.notifyChange(ch, k.String()+" taken out of the fridge")
	} else {
		a.notifyChange(ch, k.String()+" back in the fridge")
	}
	return nil
}

// Yank copies the label under the cursor.
func (a *App) Yank() tea.Cmd {
	k := a.grid.Cursor()
	text := a.inv.Get(k).Text
	if text == "" {
		return nil
	}
	if err := a.copy(text); err != nil {
		a.logger.Warn("clipboard", "err", err)
		a.status.SetError("clipboard: " + err.Error())
		return nil
	}
	return a.notice("yanked " + k.String())
}

// cursorGroup is the group of the cell under the cursor.
func (a *App) cursorGroup() string {
	return a.inv.Get(a.grid.Cursor()).GroupName
}

// targetGroup is the selected group in group mode, else the cursor's.
func (a *App) targetGroup() string {
	if a.sel.GroupMode && a.sel.Group != "" {
		return a.sel.Group
	}
	return a.cursorGroup()
}

// SelectGroup enters group mode for name. Selecting the active group again
// leaves group mode.
func (a *App) SelectGroup(name string) {
	if name == "" {
		a.status.SetError("cell is not linked")
		return
	}
	if a.sel.GroupMode && a.sel.Group == name {
		a.sel.GroupMode = false
		a.sel.Group = ""
		return
	}
	a.sel.LinkMode = false
	a.sel.Clear()
	a.sel.GroupMode = true
	a.sel.Group = name
}

func (a *App) UnlinkGroup(name string) tea.Cmd {
	if name == "" {
		a.status.SetError("no group selected")
		return nil
	}
	ch := a.inv.UnlinkAllInGroup(&a.sel, name)
	a.notifyChange(ch, "Unlinked "+name)
	return nil
}

func (a *App) ConfirmDeleteGroup(name string) {
	if name == "" {
		a.status.SetError("no group selected")
		return
	}
	g, _ := a.inv.Group(name)
	a.pendingPrompt = promptAction{kind: "delete-group", name: name}
	a.prompt.ShowConfirm(fmt.Sprintf("Delete %s and erase its %s?", name, cells(g.Size())))
}

func (a *App) StartRename(name string) {
	if name == "" {
		a.status.SetError("no group selected")
		return
	}
	a.sel.Renaming = true
	a.pendingPrompt = promptAction{kind: "rename-group", name: name}
	a.prompt.Show("Rename "+name, name)
}

// StartEdit opens the label editor for k.
func (a *App) StartEdit(k cell.Key) {
	a.grid.SetCursor(k)
	a.sel.Editing = true
	a.grid.SetEditing(k)
	a.pendingPrompt = promptAction{kind: "edit", key: k.String()}
	a.prompt.Show("Label for "+k.String(), a.inv.Get(k).Text)
}

func (a *App) ConfirmPopulate() {
	a.pendingPrompt = promptAction{kind: "populate"}
	a.prompt.ShowConfirm("Replace the inventory with sample data?")
}

func (a *App) ConfirmReset() {
	a.pendingPrompt = promptAction{kind: "reset"}
	a.prompt.ShowConfirm("Erase every cell and group?")
}

func (a *App) ToggleFinder() {
	if a.finder.Visible() {
		a.finder.Hide()
		a.setFocus(focusGrid)
	} else {
		a.finder.Show()
		a.setFocus(focusFinder)
	}
}

func (a *App) handlePromptResult(value string) tea.Cmd {
	p := a.pendingPrompt
	switch p.kind {
	case "edit":
		k, err := cell.ParseKey(p.key)
		if err == nil {
			ch := a.inv.SetText(k, value)
			if ch.Action == inventory.ActionErase {
				a.notifyChange(ch, "Erased "+k.String())
			} else {
				a.notifyChange(ch, "Edited "+k.String())
			}
		}
		a.endEdit()

	case "rename-group":
		ch, v := a.inv.RenameGroup(&a.sel, p.name, value)
		switch v {
		case inventory.RenameOK:
			a.notifyChange(ch, fmt.Sprintf("Renamed %s to %s", p.name, strings.TrimSpace(value)))
		case inventory.RenameUnchanged:
		default:
			// Keep the prompt open so the name can be corrected.
			a.sel.Renaming = true
			a.prompt.SetError(v.String())
			return nil
		}

	case "delete-group":
		ch := a.inv.DeleteAllInGroup(&a.sel, p.name)
		a.notifyChange(ch, "Deleted "+p.name)

	case "populate":
		ch, stats := a.inv.Populate(a.lay, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
		a.sel.Reset()
		a.notifyChange(ch, fmt.Sprintf("Populated %s in %d groups", cells(stats.Filled), stats.Groups))

	case "reset":
		ch := a.inv.Reset()
		a.sel.Reset()
		a.notifyChange(ch, "Inventory reset")
	}

	a.pendingPrompt = promptAction{}
	a.prompt.Hide()
	return nil
}

func (a *App) handlePromptCancelled() {
	switch a.pendingPrompt.kind {
	case "edit":
		a.endEdit()
	case "rename-group":
		a.sel.Renaming = false
	}
	a.pendingPrompt = promptAction{}
	a.prompt.Hide()
}

func (a *App) endEdit() {
	a.sel.Editing = false
	a.grid.ClearEditing()
}

// notifyChange raises an undoable toast for a non-empty change.
func (a *App) notifyChange(ch inventory.Change, msg string) {
	if ch.Empty() {
		return
	}
	a.logger.Info("change", "action", ch.Action, "group", ch.Group, "cells", len(ch.Before))
	sev := toast.Success
	switch ch.Action {
	case inventory.ActionErase, inventory.ActionDeleteGroup, inventory.ActionReset:
		sev = toast.Warning
	}
	a.bridge.Notify(toast.Notification{
		Message:     msg,
		Severity:    sev,
		UndoAction:  a.restore,
		UndoPayload: ch,
	})
}

func (a *App) restore(payload any) {
	ch, ok := payload.(inventory.Change)
	if !ok {
		return
	}
	a.inv.Restore(ch)
	a.logger.Info("undo", "action", ch.Action, "cells", len(ch.Before))
}

// Undo reverts the newest undoable change this session made.
func (a *App) Undo() bool {
	t, ok := a.bridge.Latest()
	if !ok {
		a.status.SetNotice("nothing to undo")
		return false
	}
	if !a.bridge.InvokeUndo(t.ID) {
		return false
	}
	a.status.SetNotice("undid: " + t.Message)
	return true
}

// searchCells feeds the finder: the backend's label index when it has one,
// fuzzy matching over labelled cells otherwise.
func (a *App) searchCells(query string) []panel.FinderItem {
	if query != "" && a.search != nil {
		hits, err := a.search.Search(query, finderLimit)
		if err == nil {
			items := make([]panel.FinderItem, 0, len(hits))
			for _, h := range hits {
				k, err := cell.ParseKey(h.Key)
				if err != nil {
					continue
				}
				items = append(items, panel.FinderItem{Title: h.Text, Key: k, Extra: h.GroupName})
			}
			return items
		}
		a.logger.Warn("label search failed, falling back to fuzzy", "err", err)
	}

	var items []panel.FinderItem
	a.inv.Each(func(k cell.Key, r cell.Record) {
		if r.HasContent() {
			items = append(items, panel.FinderItem{Title: r.Text, Key: k, Extra: r.GroupName})
		}
	})
	items = panel.FuzzyFilter(items, query)
	if len(items) > finderLimit {
		items = items[:finderLimit]
	}
	return items
}

func cells(n int) string {
	if n == 1 {
		return "1 cell"
	}
	return fmt.Sprintf("%d cells", n)
}
