package desktop

import (
	"errors"
	"strings"

	"appmenu/internal/models"
)

// ErrUnterminatedQuote is returned for an Exec value with an open double quote
var ErrUnterminatedQuote = errors.New("unterminated quote in Exec")

// ErrEmptyExec is returned when an Exec value expands to no arguments
var ErrEmptyExec = errors.New("empty Exec")

// ExpandExec splits an entry's Exec value into argv and expands field codes.
// No files or URLs are passed, so %f %F %u %U expand to nothing. %i becomes
// "--icon <icon>", %c the display name, %k the descriptor path and %% a
// literal percent. Deprecated codes are dropped.
func ExpandExec(e models.Entry) ([]string, error) {
	args, err := splitExec(e.Exec)
	if err != nil {
		return nil, err
	}

	var argv []string
	for _, arg := range args {
		if arg.quoted {
			// Field codes are not expanded inside quotes, only %%
			argv = append(argv, strings.ReplaceAll(arg.text, "%%", "%"))
			continue
		}
		switch arg.text {
		case "%f", "%F", "%u", "%U", "%d", "%D", "%n", "%N", "%v", "%m":
			continue
		case "%i":
			if e.Icon != "" {
				argv = append(argv, "--icon", e.Icon)
			}
			continue
		}
		argv = append(argv, expandInline(arg.text, e))
	}

	if len(argv) == 0 {
		return nil, ErrEmptyExec
	}
	return argv, nil
}

// expandInline expands field codes embedded in a larger argument
func expandInline(s string, e models.Entry) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '%':
			b.WriteByte('%')
		case 'c':
			b.WriteString(e.Name)
		case 'k':
			b.WriteString(e.Path)
		default:
			// %f, %u and the rest expand to nothing
		}
	}
	return b.String()
}

type execArg struct {
	text   string
	quoted bool
}

// splitExec tokenizes an Exec value. Inside double quotes a backslash
// escapes '"', '`', '$' and '\'.
func splitExec(exec string) ([]execArg, error) {
	var (
		args    []execArg
		cur     strings.Builder
		inQuote bool
		quoted  bool
		started bool
	)

	flush := func() {
		if started {
			args = append(args, execArg{text: cur.String(), quoted: quoted})
		}
		cur.Reset()
		started, quoted = false, false
	}

	for i := 0; i < len(exec); i++ {
		c := exec[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(exec) && strings.IndexByte("\"`$\\", exec[i+1]) >= 0:
			i++
			cur.WriteByte(exec[i])
		case c == '"':
			inQuote = !inQuote
			quoted, started = true, true
		case !inQuote && (c == ' ' || c == '\t' || c == '\n'):
			flush()
		default:
			cur.WriteByte(c)
			started = true
		}
	}

	if inQuote {
		return nil, ErrUnterminatedQuote
	}
	flush()
	return args, nil
}
