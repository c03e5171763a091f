// Package iconcache memoizes icon lookups for the renderer.
//
// A Cache is constructed explicitly and handed to the code that draws
// entries; there is no package-level instance. Entries are added on first
// lookup and never evicted: the key space is the set of icon and size pairs
// actually drawn during a session.
package iconcache

import (
	"sync"
)

// Generic icons tried, in order, when a name cannot be resolved
const (
	FallbackPrimary   = "application-default"
	FallbackSecondary = "application-x-executable"
)

// Handle is a resolved icon
type Handle struct {
	Name string // Name that resolved; a fallback name when the requested one failed
	Size int
	Path string // Icon file; empty when nothing resolved, not even the fallbacks
}

// Found reports whether an icon file was located
func (h Handle) Found() bool {
	return h.Path != ""
}

// Resolver locates the file for an icon name at a size
type Resolver interface {
	Lookup(name string, size int) (string, bool)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(name string, size int) (string, bool)

// Lookup calls f
func (f ResolverFunc) Lookup(name string, size int) (string, bool) {
	return f(name, size)
}

type key struct {
	name string
	size int
}

// Cache memoizes Resolve by (name, size)
type Cache struct {
	mu       sync.Mutex
	resolver Resolver
	entries  map[key]Handle
}

// New creates a cache over resolver
func New(resolver Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		entries:  make(map[key]Handle),
	}
}

// Resolve returns the icon for name at size, resolving it on first use.
// The lock covers the lookup as well, so concurrent first lookups of the
// same pair resolve once.
func (c *Cache) Resolve(name string, size int) Handle {
	k := key{name: name, size: size}

	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.entries[k]; ok {
		return h
	}
	h := c.resolve(name, size)
	c.entries[k] = h
	return h
}

// Len returns the number of memoized pairs
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) resolve(name string, size int) Handle {
	for _, candidate := range []string{name, FallbackPrimary, FallbackSecondary} {
		if candidate == "" {
			continue
		}
		if path, ok := c.resolver.Lookup(candidate, size); ok {
			return Handle{Name: candidate, Size: size, Path: path}
		}
	}
	return Handle{Name: FallbackSecondary, Size: size}
}
