package components

import (
	"strings"
	"testing"

	"appmenu/internal/config"
	"appmenu/internal/iconcache"
	"appmenu/internal/models"
)

func testEntries() []models.Entry {
	return []models.Entry{
		{AppID: "calc", Name: "Calculator", Comment: "Do sums", Icon: "calc"},
		{AppID: "edit", Name: "Editor", Icon: "edit"},
		{AppID: "term", Name: "Terminal", Icon: "term"},
	}
}

func TestEntryList_SetEntries(t *testing.T) {
	list := NewEntryList(nil)
	list.Cursor = 2

	list.SetEntries("Utility", testEntries())
	if list.Cursor != 0 {
		t.Errorf("SetEntries should reset the cursor, got %d", list.Cursor)
	}
	if list.Title != "Utility" {
		t.Errorf("Title = %q, want Utility", list.Title)
	}
}

func TestEntryList_RefreshKeepsSelection(t *testing.T) {
	list := NewEntryList(nil)
	list.SetEntries("Utility", testEntries())
	list.Cursor = 2 // Terminal

	updated := []models.Entry{
		{AppID: "about", Name: "About"},
		{AppID: "calc", Name: "Calculator"},
		{AppID: "term", Name: "Terminal"},
		{AppID: "zip", Name: "Zip"},
	}
	list.Refresh(updated)

	if e, _ := list.Current(); e.AppID != "term" {
		t.Errorf("Refresh should keep Terminal selected, got %q", e.AppID)
	}

	list.Refresh([]models.Entry{{AppID: "other", Name: "Other"}})
	if list.Cursor != 0 {
		t.Errorf("Cursor should reset when the app disappears, got %d", list.Cursor)
	}
}

func TestEntryList_Navigation(t *testing.T) {
	list := NewEntryList(nil)
	list.SetEntries("Utility", testEntries())
	list.Height = 4 // Page size 1

	list.PageDown()
	if list.Cursor != 1 {
		t.Errorf("PageDown = %d, want 1", list.Cursor)
	}
	list.GoToLast()
	list.MoveDown()
	if list.Cursor != 2 {
		t.Errorf("MoveDown past end = %d, want 2", list.Cursor)
	}
	list.PageUp()
	list.MoveUp()
	list.MoveUp()
	if list.Cursor != 0 {
		t.Errorf("MoveUp past start = %d, want 0", list.Cursor)
	}
}

func TestEntryList_CurrentEmpty(t *testing.T) {
	list := NewEntryList(nil)
	if _, ok := list.Current(); ok {
		t.Error("Empty list should have no current entry")
	}
	if !strings.Contains(list.View(), "No applications") {
		t.Error("Empty list should say so")
	}
}

func TestEntryList_View(t *testing.T) {
	icons := iconcache.New(iconcache.ResolverFunc(func(name string, size int) (string, bool) {
		return "/icons/" + name + ".png", name == "calc"
	}))

	list := NewEntryList(icons)
	list.Focused = true
	list.Favorites = config.Favorites{AppIDs: []string{"term"}}
	list.SetEntries("Utility", testEntries())

	view := list.View()
	for _, want := range []string{"Utility (3)", "Calculator", "Do sums", "★"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
	if icons.Len() != 3 {
		t.Errorf("Expected 3 icon lookups cached, got %d", icons.Len())
	}
}
