package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	// Test all key bindings are defined
	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", km.Up},
		{"Down", km.Down},
		{"PageUp", km.PageUp},
		{"PageDown", km.PageDown},
		{"Home", km.Home},
		{"End", km.End},
		{"Tab", km.Tab},
		{"ShiftTab", km.ShiftTab},
		{"Launch", km.Launch},
		{"Favorite", km.Favorite},
		{"Preview", km.Preview},
		{"Refresh", km.Refresh},
		{"Changes", km.Changes},
		{"NextCat", km.NextCat},
		{"PrevCat", km.PrevCat},
		{"Help", km.Help},
		{"Escape", km.Escape},
		{"Quit", km.Quit},
	}

	for _, b := range bindings {
		if len(b.binding.Keys()) == 0 {
			t.Errorf("%s binding should have keys", b.name)
		}
		if b.binding.Help().Key == "" {
			t.Errorf("%s binding should have help key", b.name)
		}
		if b.binding.Help().Desc == "" {
			t.Errorf("%s binding should have help description", b.name)
		}
	}
}

func TestKeyMapNoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := make(map[string]string)

	for name, b := range map[string]key.Binding{
		"Up": km.Up, "Down": km.Down, "PageUp": km.PageUp, "PageDown": km.PageDown,
		"Home": km.Home, "End": km.End, "Tab": km.Tab, "ShiftTab": km.ShiftTab,
		"Launch": km.Launch, "Favorite": km.Favorite, "Preview": km.Preview,
		"Refresh": km.Refresh, "Changes": km.Changes, "NextCat": km.NextCat,
		"PrevCat": km.PrevCat, "Help": km.Help, "Escape": km.Escape, "Quit": km.Quit,
	} {
		for _, k := range b.Keys() {
			if other, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, other, name)
			}
			seen[k] = name
		}
	}
}

func TestShortHelp(t *testing.T) {
	if len(DefaultKeyMap().ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
}

func TestFullHelp(t *testing.T) {
	groups := DefaultKeyMap().FullHelp()
	if len(groups) == 0 {
		t.Fatal("FullHelp should not be empty")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Errorf("FullHelp group %d is empty", i)
		}
	}
}
