package inventory

import "github.com/pfassina/labtracker/internal/cell"

// Action names the operation that produced a Change.
type Action string

const (
	ActionLink        Action = "link"
	ActionUnlink      Action = "unlink"
	ActionErase       Action = "erase"
	ActionUnlinkGroup Action = "unlink-group"
	ActionDeleteGroup Action = "delete-group"
	ActionEdit        Action = "edit"
	ActionOutFridge   Action = "out-fridge"
	ActionRename      Action = "rename"
	ActionPopulate    Action = "populate"
	ActionReset       Action = "reset"
	ActionRestore     Action = "restore"
	ActionReload      Action = "reload"
)

// Snapshot is the record a key held before a change. Present is false when
// the key had no record at all.
type Snapshot struct {
	Key     cell.Key
	Record  cell.Record
	Present bool
}

// Change describes one applied mutation: the action, the group it concerned
// (if any) and the prior record of every key it wrote.
type Change struct {
	Action Action
	Group  string
	Before []Snapshot
}

// Empty reports whether the change wrote nothing.
func (c Change) Empty() bool {
	return len(c.Before) == 0
}

// Keys returns the keys the change wrote.
func (c Change) Keys() []cell.Key {
	keys := make([]cell.Key, len(c.Before))
	for i, s := range c.Before {
		keys[i] = s.Key
	}
	return keys
}

type write struct {
	key   cell.Key
	patch cell.Patch
}
