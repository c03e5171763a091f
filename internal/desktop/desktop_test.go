package desktop

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"appmenu/internal/models"
)

func envFunc(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestDecode(t *testing.T) {
	d, err := Decode(strings.NewReader(`[Desktop Entry]
Name=Viewer
Keywords=image;photo;;
NoDisplay=TRUE

[Desktop Action new-window]
Name=New Window
`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if v, _ := d.String(KeyName); v != "Viewer" {
		t.Errorf("Name = %q, want Viewer", v)
	}
	if !d.Bool(KeyNoDisplay) {
		t.Error("NoDisplay=TRUE should read as true")
	}
	if got := d.List("Keywords"); !slices.Equal(got, []string{"image", "photo"}) {
		t.Errorf("List(Keywords) = %v", got)
	}
	if _, ok := d.Raw("Exec"); ok {
		t.Error("keys from other groups must not leak into the entry")
	}
}

func TestDecodeMissingGroup(t *testing.T) {
	_, err := Decode(strings.NewReader("[Something Else]\nName=x\n"))
	if !errors.Is(err, ErrNoDesktopEntry) {
		t.Errorf("expected ErrNoDesktopEntry, got %v", err)
	}
}

func TestLanguagesFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want []string
	}{
		{"LANG only", map[string]string{"LANG": "de_DE.UTF-8"}, []string{"de_DE"}},
		{"LANGUAGE list first", map[string]string{"LANGUAGE": "fr:en_GB", "LANG": "de_DE.UTF-8"}, []string{"fr", "en_GB", "de_DE"}},
		{"LC_ALL wins over LANG", map[string]string{"LC_ALL": "pt_BR.UTF-8", "LANG": "en_US.UTF-8"}, []string{"pt_BR"}},
		{"modifier kept", map[string]string{"LANG": "sr_RS.UTF-8@latin"}, []string{"sr_RS@latin"}},
		{"C dropped", map[string]string{"LANG": "C.UTF-8"}, nil},
		{"duplicates dropped", map[string]string{"LANGUAGE": "de_DE", "LANG": "de_DE.UTF-8"}, []string{"de_DE"}},
		{"empty", map[string]string{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LanguagesFromEnv(envFunc(tt.env)); !slices.Equal(got, tt.want) {
				t.Errorf("LanguagesFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocaleCandidates(t *testing.T) {
	tests := []struct {
		loc  string
		want []string
	}{
		{"sr_YU@Latn", []string{"sr_YU@Latn", "sr_YU", "sr@Latn", "sr"}},
		{"de_DE.UTF-8", []string{"de_DE", "de"}},
		{"fr", []string{"fr"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := localeCandidates(tt.loc); !slices.Equal(got, tt.want) {
			t.Errorf("localeCandidates(%q) = %v, want %v", tt.loc, got, tt.want)
		}
	}
}

func TestDefaultPaths(t *testing.T) {
	got := DefaultPaths(envFunc(map[string]string{"HOME": "/home/u"}))
	want := []string{
		"/home/u/.local/share/applications",
		"/usr/local/share/applications",
		"/usr/share/applications",
	}
	if !slices.Equal(got, want) {
		t.Errorf("DefaultPaths() = %v, want %v", got, want)
	}

	got = DefaultPaths(envFunc(map[string]string{
		"XDG_DATA_HOME": "/data/home",
		"XDG_DATA_DIRS": "/opt/share:/data/home:/opt/share/",
	}))
	want = []string{"/data/home/applications", "/opt/share/applications"}
	if !slices.Equal(got, want) {
		t.Errorf("DefaultPaths() with XDG vars = %v, want %v", got, want)
	}
}

func TestFileID(t *testing.T) {
	tests := []struct {
		root, path, want string
	}{
		{"/usr/share/applications", "/usr/share/applications/firefox.desktop", "firefox"},
		{"/usr/share/applications", "/usr/share/applications/kde4/kate.desktop", "kde4-kate"},
		{"", "/somewhere/org.gnome.Nautilus.desktop", "org.gnome.Nautilus"},
		{"/other/root", "/usr/share/applications/vim.desktop", "vim"},
	}

	for _, tt := range tests {
		if got := FileID(tt.root, tt.path); got != tt.want {
			t.Errorf("FileID(%q, %q) = %q, want %q", tt.root, tt.path, got, tt.want)
		}
	}
}

func TestIsDescriptor(t *testing.T) {
	if !IsDescriptor("firefox.desktop") {
		t.Error("firefox.desktop should be a descriptor")
	}
	if IsDescriptor("notes.txt") || IsDescriptor(".hidden.desktop") {
		t.Error("non-desktop and hidden files should not be descriptors")
	}
}

func TestExpandExec(t *testing.T) {
	entry := models.Entry{
		Name: "Viewer",
		Icon: "viewer",
		Path: "/usr/share/applications/viewer.desktop",
	}

	tests := []struct {
		exec string
		want []string
	}{
		{"viewer %U", []string{"viewer"}},
		{"viewer --new-window %f", []string{"viewer", "--new-window"}},
		{"viewer %i --title=%c", []string{"viewer", "--icon", "viewer", "--title=Viewer"}},
		{"viewer --desktop-file %k", []string{"viewer", "--desktop-file", "/usr/share/applications/viewer.desktop"}},
		{`sh -c "echo \"hi\" 100%%"`, []string{"sh", "-c", `echo "hi" 100%`}},
		{`"/opt/My App/run" --flag`, []string{"/opt/My App/run", "--flag"}},
		{"progress 50%%", []string{"progress", "50%"}},
		{`run ""`, []string{"run", ""}},
	}

	for _, tt := range tests {
		entry.Exec = tt.exec
		got, err := ExpandExec(entry)
		if err != nil {
			t.Errorf("ExpandExec(%q) error: %v", tt.exec, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ExpandExec(%q) = %q, want %q", tt.exec, got, tt.want)
		}
	}
}

func TestExpandExecErrors(t *testing.T) {
	if _, err := ExpandExec(models.Entry{Exec: `sh -c "unterminated`}); !errors.Is(err, ErrUnterminatedQuote) {
		t.Errorf("expected ErrUnterminatedQuote, got %v", err)
	}
	if _, err := ExpandExec(models.Entry{Exec: "%U %F"}); !errors.Is(err, ErrEmptyExec) {
		t.Errorf("expected ErrEmptyExec, got %v", err)
	}
}
