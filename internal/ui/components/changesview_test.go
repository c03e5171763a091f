package components

import (
	"strings"
	"testing"

	"appmenu/internal/index"
)

func testSummary() index.Summary {
	return index.Summary{
		Added: []string{
			"Graphics\tGIMP\tgimp",
			"Utility\tTerminal\tterm",
		},
		Removed: []string{
			"Utility\tOld Terminal\told-term",
		},
	}
}

func TestNewChangesView(t *testing.T) {
	c := NewChangesView()

	if c.Width != 80 || c.Height != 20 {
		t.Errorf("size = %dx%d, want 80x20", c.Width, c.Height)
	}
	if c.HasChanges() {
		t.Error("a new view has no changes")
	}
	if !strings.Contains(c.View(), "No changes") {
		t.Error("empty view should say there are no changes")
	}
}

func TestChangesView_SetChanges(t *testing.T) {
	c := NewChangesView()
	c.ScrollOffset = 3
	c.CurrentGroup = 1

	c.SetChanges(4, testSummary())

	if c.Generation != 4 {
		t.Errorf("Generation = %d, want 4", c.Generation)
	}
	if c.ScrollOffset != 0 || c.CurrentGroup != 0 {
		t.Error("position should be reset")
	}
	if c.GroupCount() != 2 {
		t.Fatalf("GroupCount() = %d, want 2", c.GroupCount())
	}

	// Categories in name order, removals first
	utility := c.groups[1]
	if utility.category != "Utility" {
		t.Fatalf("second group = %q, want Utility", utility.category)
	}
	if utility.lines[0].added || utility.lines[0].appID != "old-term" {
		t.Errorf("first Utility line = %+v, want removal of old-term", utility.lines[0])
	}
	if !utility.lines[1].added || utility.lines[1].name != "Terminal" {
		t.Errorf("second Utility line = %+v, want addition of Terminal", utility.lines[1])
	}
}

func TestChangesView_Navigation(t *testing.T) {
	c := NewChangesView()
	c.SetChanges(1, testSummary())

	c.ScrollUp()
	if c.ScrollOffset != 0 {
		t.Error("ScrollOffset should not go below 0")
	}

	c.NextGroup()
	if c.CurrentGroup != 1 {
		t.Errorf("CurrentGroup = %d, want 1", c.CurrentGroup)
	}
	// Graphics header, one line, blank
	if c.ScrollOffset != 3 {
		t.Errorf("ScrollOffset = %d, want 3", c.ScrollOffset)
	}

	c.NextGroup()
	if c.CurrentGroup != 1 {
		t.Error("CurrentGroup should stop at the last group")
	}

	c.PrevGroup()
	if c.CurrentGroup != 0 || c.ScrollOffset != 0 {
		t.Errorf("after PrevGroup: group %d offset %d", c.CurrentGroup, c.ScrollOffset)
	}

	for rep := 0; rep < 20; rep++ {
		c.ScrollDown()
	}
	if want := len(c.lines()) - 1; c.ScrollOffset != want {
		t.Errorf("ScrollOffset = %d, want %d", c.ScrollOffset, want)
	}
}

func TestChangesView_View(t *testing.T) {
	c := NewChangesView()
	c.SetChanges(2, testSummary())

	view := c.View()
	for _, want := range []string{"rebuild 2", "+2", "-1", "Graphics", "+ GIMP  gimp", "- Old Terminal  old-term"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
