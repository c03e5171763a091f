package iconcache

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver knows a fixed set of names and counts lookups
type stubResolver struct {
	known map[string]string
	calls atomic.Int32
}

func (s *stubResolver) Lookup(name string, size int) (string, bool) {
	s.calls.Add(1)
	path, ok := s.known[name]
	return path, ok
}

func TestResolveMemoizes(t *testing.T) {
	r := &stubResolver{known: map[string]string{"firefox": "/icons/firefox.png"}}
	c := New(r)

	first := c.Resolve("firefox", 32)
	second := c.Resolve("firefox", 32)

	assert.Equal(t, first, second)
	assert.Equal(t, "/icons/firefox.png", first.Path)
	assert.Equal(t, int32(1), r.calls.Load())

	c.Resolve("firefox", 64)
	assert.Equal(t, 2, c.Len(), "sizes are cached separately")
}

func TestResolveFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		known    map[string]string
		wantName string
		found    bool
	}{
		{"primary fallback", map[string]string{FallbackPrimary: "/d.png", FallbackSecondary: "/x.png"}, FallbackPrimary, true},
		{"secondary fallback", map[string]string{FallbackSecondary: "/x.png"}, FallbackSecondary, true},
		{"nothing resolves", map[string]string{}, FallbackSecondary, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(&stubResolver{known: tt.known}).Resolve("missing-app", 48)
			assert.Equal(t, tt.wantName, h.Name)
			assert.Equal(t, tt.found, h.Found())
			assert.Equal(t, 48, h.Size)
		})
	}
}

func TestResolveConcurrent(t *testing.T) {
	r := &stubResolver{known: map[string]string{"app": "/app.svg"}}
	c := New(r)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := c.Resolve("app", 16+i%2)
			assert.Equal(t, "/app.svg", h.Path)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, int32(2), r.calls.Load())
}

func TestResolverFunc(t *testing.T) {
	c := New(ResolverFunc(func(name string, size int) (string, bool) {
		return "/" + name, name == "ok"
	}))
	assert.Equal(t, "/ok", c.Resolve("ok", 24).Path)
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestThemeResolver(t *testing.T) {
	data := t.TempDir()
	pixmaps := t.TempDir()
	touch(t, filepath.Join(data, "icons", "Papirus", "32x32", "apps", "themed.svg"))
	touch(t, filepath.Join(data, "icons", "hicolor", "32x32", "apps", "sized.png"))
	touch(t, filepath.Join(data, "icons", "hicolor", "scalable", "apps", "vector.svg"))
	touch(t, filepath.Join(pixmaps, "legacy.xpm"))
	absolute := filepath.Join(data, "custom.png")
	touch(t, absolute)

	r := NewThemeResolver([]string{data}, "Papirus")
	r.Pixmaps = []string{pixmaps}

	tests := []struct {
		name string
		size int
		want string
		ok   bool
	}{
		{"themed", 32, filepath.Join(data, "icons", "Papirus", "32x32", "apps", "themed.svg"), true},
		{"sized", 32, filepath.Join(data, "icons", "hicolor", "32x32", "apps", "sized.png"), true},
		{"sized", 64, "", false},
		{"vector", 64, filepath.Join(data, "icons", "hicolor", "scalable", "apps", "vector.svg"), true},
		{"legacy", 16, filepath.Join(pixmaps, "legacy.xpm"), true},
		{absolute, 16, absolute, true},
		{"missing", 32, "", false},
	}

	for _, tt := range tests {
		path, ok := r.Lookup(tt.name, tt.size)
		if ok != tt.ok || (tt.ok && path != tt.want) {
			t.Errorf("Lookup(%q, %d) = %q, %v; want %q, %v", tt.name, tt.size, path, ok, tt.want, tt.ok)
		}
	}
}

func TestDataDirsFromEnv(t *testing.T) {
	env := map[string]string{"HOME": "/home/u"}
	got := DataDirsFromEnv(func(k string) string { return env[k] })
	assert.Equal(t, []string{"/home/u/.local/share", "/usr/local/share", "/usr/share"}, got)
}
