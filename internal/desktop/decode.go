// Package desktop reads freedesktop desktop entry files into launcher entries.
//
// A descriptor is decoded once into its raw [Desktop Entry] key/value group
// and then interpreted against a configuration snapshot and the user's
// locale preferences. Decoding and parsing never report per-file errors to
// callers that scan many files: a file that cannot be read, decoded, or that
// lacks a required field is simply skipped.
package desktop

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-ini/ini"
)

// GroupName is the section holding the entry's keys
const GroupName = "Desktop Entry"

// Extension is the file extension of desktop entry files
const Extension = ".desktop"

// ErrNoDesktopEntry is returned when a file lacks the [Desktop Entry] group
var ErrNoDesktopEntry = errors.New("no [Desktop Entry] group")

// Well-known keys
const (
	KeyType       = "Type"
	KeyName       = "Name"
	KeyComment    = "Comment"
	KeyExec       = "Exec"
	KeyIcon       = "Icon"
	KeyCategories = "Categories"
	KeyNoDisplay  = "NoDisplay"
	KeyHidden     = "Hidden"
	KeyOnlyShowIn = "OnlyShowIn"
	KeyNotShowIn  = "NotShowIn"
)

// loadOptions keeps desktop entry values intact: ';' is a list separator,
// not a comment, and quotes and backslashes belong to the value.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
	SkipUnrecognizableLines: true,
	KeyValueDelimiters:      "=",
}

// Descriptor is the raw [Desktop Entry] group of one file
type Descriptor struct {
	fields map[string]string
}

// Decode reads a desktop entry from r
func Decode(r io.Reader) (*Descriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeBytes(data)
}

// DecodeFile reads and decodes the desktop entry at path
func DecodeFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return d, nil
}

func decodeBytes(data []byte) (*Descriptor, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, err
	}

	section, err := f.GetSection(GroupName)
	if err != nil {
		return nil, ErrNoDesktopEntry
	}

	d := &Descriptor{fields: make(map[string]string, len(section.Keys()))}
	for _, key := range section.Keys() {
		// Value skips go-ini's %(name)s interpolation, which would mangle Exec field codes
		d.fields[key.Name()] = key.Value()
	}
	return d, nil
}

// NewDescriptor builds a descriptor from already-decoded key/value pairs
func NewDescriptor(fields map[string]string) *Descriptor {
	d := &Descriptor{fields: make(map[string]string, len(fields))}
	for k, v := range fields {
		d.fields[k] = v
	}
	return d
}

// Raw returns the undecoded value of key
func (d *Descriptor) Raw(key string) (string, bool) {
	v, ok := d.fields[key]
	return v, ok
}

// String returns the unescaped value of key
func (d *Descriptor) String(key string) (string, bool) {
	v, ok := d.fields[key]
	if !ok {
		return "", false
	}
	return unescape(v), true
}

// Bool reports whether key is set to true
func (d *Descriptor) Bool(key string) bool {
	v, ok := d.fields[key]
	return ok && strings.EqualFold(strings.TrimSpace(v), "true")
}

// List returns the non-empty items of a ';'-separated value
func (d *Descriptor) List(key string) []string {
	v, ok := d.fields[key]
	if !ok {
		return nil
	}
	var items []string
	for _, item := range strings.Split(v, ";") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Localized returns the best value of key for the locale preferences,
// falling back to the unlocalized key.
func (d *Descriptor) Localized(key string, locales []string) (string, bool) {
	for _, loc := range locales {
		for _, candidate := range localeCandidates(loc) {
			if v, ok := d.String(key + "[" + candidate + "]"); ok && v != "" {
				return v, true
			}
		}
	}
	v, ok := d.String(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// unescape applies the desktop entry string escapes \s \n \t \r and \\
func unescape(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}

	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c != '\\' || i == len(v)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch v[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			// Unknown escapes (e.g. \" inside Exec) are kept for the next stage
			b.WriteByte('\\')
			b.WriteByte(v[i])
		}
	}
	return b.String()
}
