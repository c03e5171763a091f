package models

import "slices"

// Index maps a category name to its ordered bucket of entries.
// An Index is never patched: every rebuild produces a new one.
type Index map[string][]Entry

// Bucket returns the entries of a category, or nil if the category is absent
func (idx Index) Bucket(category string) []Entry {
	return idx[category]
}

// Has reports whether the category key is present (possibly with no entries)
func (idx Index) Has(category string) bool {
	_, ok := idx[category]
	return ok
}

// Len returns the number of distinct applications across all buckets
func (idx Index) Len() int {
	seen := make(map[string]struct{})
	for _, bucket := range idx {
		for _, e := range bucket {
			seen[e.AppID] = struct{}{}
		}
	}
	return len(seen)
}

// Equal reports whether both indexes hold the same keys with the same ordered buckets
func (idx Index) Equal(other Index) bool {
	if len(idx) != len(other) {
		return false
	}
	for category, bucket := range idx {
		otherBucket, ok := other[category]
		if !ok {
			return false
		}
		if !slices.EqualFunc(bucket, otherBucket, Entry.Equal) {
			return false
		}
	}
	return true
}

// Find returns the first entry with the given app ID in any bucket
func (idx Index) Find(appID string) (Entry, bool) {
	for _, bucket := range idx {
		for _, e := range bucket {
			if e.AppID == appID {
				return e, true
			}
		}
	}
	return Entry{}, false
}
