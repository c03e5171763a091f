package index

import (
	"fmt"
	"slices"
	"strings"

	"appmenu/internal/models"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Summary lists the index lines added and removed between two rebuilds.
// Each line is "category<TAB>name<TAB>appid".
type Summary struct {
	Added   []string
	Removed []string
}

// Empty reports whether nothing changed
func (s Summary) Empty() bool {
	return len(s.Added) == 0 && len(s.Removed) == 0
}

// String renders a short human-readable summary
func (s Summary) String() string {
	if s.Empty() {
		return "no changes"
	}
	return fmt.Sprintf("+%d -%d", len(s.Added), len(s.Removed))
}

// Lines renders the index one entry per line, categories in name order
func Lines(idx models.Index) string {
	categories := make([]string, 0, len(idx))
	for c := range idx {
		categories = append(categories, c)
	}
	slices.Sort(categories)

	var b strings.Builder
	for _, c := range categories {
		for _, e := range idx[c] {
			fmt.Fprintf(&b, "%s\t%s\t%s\n", c, e.Name, e.AppID)
		}
	}
	return b.String()
}

// Changes compares two indexes line by line
func Changes(old, new models.Index) Summary {
	dmp := diffmatchpatch.New()

	// Convert lines to chars for line-level diff
	a, b, lineArray := dmp.DiffLinesToChars(Lines(old), Lines(new))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var s Summary
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			s.Added = append(s.Added, splitLines(d.Text)...)
		case diffmatchpatch.DiffDelete:
			s.Removed = append(s.Removed, splitLines(d.Text)...)
		}
	}
	return s
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
