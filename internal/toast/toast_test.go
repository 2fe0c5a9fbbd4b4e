package toast

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/pfassina/labtracker/internal/cell"
)

type keys []cell.Key

func (k keys) Keys() []cell.Key { return k }

func TestNotifyDefaults(t *testing.T) {
	b := NewBridge()
	defer b.Close()

	id := b.Notify(Notification{Message: "Cell erased"})
	list := b.List()
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("List() = %+v", list)
	}
	if got := list[0].Expires.Sub(list[0].Created); got != DefaultDuration {
		t.Errorf("lifetime = %v, want %v", got, DefaultDuration)
	}
	if list[0].CanUndo {
		t.Error("CanUndo without an undo action")
	}
}

func TestInvokeUndo(t *testing.T) {
	b := NewBridge()
	defer b.Close()

	k := cell.NewKey(cell.Left, 0, 0)
	var got any
	id := b.Notify(Notification{
		Message:     "Cell unlinked",
		UndoAction:  func(p any) { got = p },
		UndoPayload: keys{k},
	})

	if !b.InvokeUndo(id) {
		t.Fatal("InvokeUndo() = false")
	}
	if ks, ok := got.(keys); !ok || len(ks) != 1 || ks[0] != k {
		t.Errorf("undo payload = %#v", got)
	}
	if len(b.List()) != 0 {
		t.Error("notification not removed")
	}
	if !b.Restored(k) {
		t.Error("restored key not pulsing")
	}
	if b.Restored(cell.NewKey(cell.Left, 1, 0)) {
		t.Error("untouched key pulsing")
	}
	if b.InvokeUndo(id) {
		t.Error("undo ran twice")
	}
}

func TestDismissSkipsUndo(t *testing.T) {
	b := NewBridge()
	defer b.Close()

	ran := false
	id := b.Notify(Notification{Message: "x", UndoAction: func(any) { ran = true }})
	if !b.Dismiss(id) {
		t.Fatal("Dismiss() = false")
	}
	if b.InvokeUndo(id) || ran {
		t.Error("undo ran after dismiss")
	}
	if b.Dismiss(id) {
		t.Error("second Dismiss() = true")
	}
}

func TestAutoDismiss(t *testing.T) {
	var changes atomic.Int32
	b := NewBridge(WithOnChange(func() { changes.Add(1) }))
	defer b.Close()

	b.Notify(Notification{Message: "short", Duration: 10 * time.Millisecond})
	b.Notify(Notification{Message: "long", Duration: time.Hour})

	deadline := time.Now().Add(2 * time.Second)
	for len(b.List()) != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("short notification never expired: %+v", b.List())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if b.List()[0].Message != "long" {
		t.Errorf("wrong notification expired")
	}
	if changes.Load() < 3 {
		t.Errorf("onChange called %d times, want >= 3", changes.Load())
	}
}

func TestIndependentNotifications(t *testing.T) {
	b := NewBridge()
	defer b.Close()

	var first, second int
	id1 := b.Notify(Notification{Message: "one", UndoAction: func(any) { first++ }})
	b.Notify(Notification{Message: "two", UndoAction: func(any) { second++ }})

	latest, ok := b.Latest()
	if !ok || latest.Message != "two" {
		t.Errorf("Latest() = %+v, %v", latest, ok)
	}
	b.InvokeUndo(id1)
	if first != 1 || second != 0 {
		t.Errorf("undo counts = %d %d", first, second)
	}
	if len(b.List()) != 1 {
		t.Errorf("List() = %+v", b.List())
	}
}

func TestWithDuration(t *testing.T) {
	b := NewBridge(WithDuration(time.Second))
	defer b.Close()
	b.Notify(Notification{Message: "x"})
	tt := b.List()[0]
	if tt.Expires.Sub(tt.Created) != time.Second {
		t.Errorf("lifetime = %v", tt.Expires.Sub(tt.Created))
	}
}

func TestClose(t *testing.T) {
	b := NewBridge()
	b.Notify(Notification{Message: "x"})
	b.Close()
	if len(b.List()) != 0 {
		t.Error("Close kept notifications")
	}
	b.Notify(Notification{Message: "after close"})
	if len(b.List()) != 0 {
		t.Error("notification accepted after Close")
	}
}
