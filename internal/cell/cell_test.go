package cell

import "testing"

func TestKeyRoundTrip(t *testing.T) {
	keys := []Key{
		NewKey(Left, 0, 0),
		NewKey(Middle, 6, 1),
		NewKey(Main, 20, 9),
		NewKey(Main, 123, 45),
	}
	for _, k := range keys {
		t.Run(k.String(), func(t *testing.T) {
			got, err := ParseKey(k.String())
			if err != nil {
				t.Fatal(err)
			}
			if got != k {
				t.Errorf("ParseKey(%q) = %+v, want %+v", k.String(), got, k)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	if got := NewKey(Left, 0, 1).String(); got != "left-0-1" {
		t.Errorf("String() = %q, want %q", got, "left-0-1")
	}
}

func TestParseKey_Invalid(t *testing.T) {
	tests := []string{
		"",
		"left",
		"left-1",
		"left-1-2-3",
		"top-1-2",
		"left--1-2",
		"left-a-2",
		"left-01-2",
		"left-1-+2",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			if _, err := ParseKey(s); err == nil {
				t.Errorf("ParseKey(%q) should fail", s)
			}
		})
	}
}

func TestKeyText(t *testing.T) {
	var k Key
	if err := k.UnmarshalText([]byte("middle-3-1")); err != nil {
		t.Fatal(err)
	}
	if k != NewKey(Middle, 3, 1) {
		t.Errorf("UnmarshalText = %+v", k)
	}
	b, _ := k.MarshalText()
	if string(b) != "middle-3-1" {
		t.Errorf("MarshalText = %q", b)
	}
}

func TestPatchApply_PreservesMissingFields(t *testing.T) {
	r := Record{Text: "Sample 1", State: StateRegular, OutFridge: true}
	r = LinkPatch("Group1", "#FFC928").Apply(r)

	if r.Text != "Sample 1" || !r.OutFridge {
		t.Errorf("link patch clobbered fields: %+v", r)
	}
	if !r.Linked || r.GroupName != "Group1" || r.GroupColor != "#FFC928" {
		t.Errorf("link patch not applied: %+v", r)
	}

	r = UnlinkPatch().Apply(r)
	if r.Linked || r.GroupName != "" || r.GroupColor != "" {
		t.Errorf("unlink patch not applied: %+v", r)
	}
	if r.Text != "Sample 1" {
		t.Errorf("unlink patch cleared text")
	}

	r = ResetPatch().Apply(r)
	if r != Empty() {
		t.Errorf("reset patch = %+v, want %+v", r, Empty())
	}
}

func TestTextPatch_State(t *testing.T) {
	if got := TextPatch("x").Apply(Empty()).State; got != StateRegular {
		t.Errorf("state = %q, want regular", got)
	}
	if got := TextPatch("   ").Apply(Record{Text: "x", State: StateRegular}).State; got != StateEmpty {
		t.Errorf("state = %q, want empty", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Record
		want Record
	}{
		{
			"half linked",
			Record{Text: "a", State: StateRegular, Linked: true, GroupName: "Group1"},
			Record{Text: "a", State: StateRegular},
		},
		{
			"derived state",
			Record{Text: "a", State: StateHoverSelected},
			Record{Text: "a", State: StateRegular},
		},
		{
			"missing state",
			Record{},
			Record{State: StateEmpty},
		},
		{
			"blank but linked",
			Record{Text: "  ", State: StateRegular, Linked: true, GroupName: "Group1", GroupColor: "#fff"},
			Record{Text: "  ", State: StateEmpty},
		},
		{
			"regular without text",
			Record{State: StateRegular},
			Record{State: StateEmpty},
		},
		{
			"consistent",
			Record{Text: "a", State: StateRegular, Linked: true, GroupName: "G", GroupColor: "#fff"},
			Record{Text: "a", State: StateRegular, Linked: true, GroupName: "G", GroupColor: "#fff"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	full := Record{Text: "Sample", State: StateRegular}
	empty := Empty()

	tests := []struct {
		name string
		rec  Record
		ctx  Context
		want State
	}{
		{"empty idle", empty, Context{}, StateEmpty},
		{"regular idle", full, Context{}, StateRegular},
		{"hover", full, Context{Hovered: true}, StateHover},
		{"hover empty", empty, Context{Hovered: true}, StateEmpty},
		{"selected", full, Context{Selected: true}, StateSelected},
		{"hover selected", full, Context{Hovered: true, Selected: true}, StateHoverSelected},
		{"renaming", full, Context{Renaming: true, Hovered: true}, StateRenaming},
		{"editing", full, Context{Editing: true, Selected: true}, StateEditing},
		{"loading", full, Context{Loading: true, Editing: true}, StateLoading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Display(tt.rec, tt.ctx); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPresent(t *testing.T) {
	r := Record{Text: "x", State: StateRegular, Linked: true, GroupName: "G", GroupColor: "#123456", OutFridge: true}
	p := Present(r, Context{Selected: true, GroupHover: true, Disabled: true})
	if !p.Linked || !p.OutFridge || !p.GroupHover || !p.IsSelected || !p.IsDisabled {
		t.Errorf("Present() = %+v", p)
	}
	if p.GroupColor != "#123456" || p.State != StateSelected {
		t.Errorf("Present() = %+v", p)
	}
}
