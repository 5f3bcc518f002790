package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"refcheck/internal/source"
)

// lineEntry is one rendered line: a diagnostic or, with notes on, one of its notes.
type lineEntry struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

// FormatGoldenDiagnostics renders one line per diagnostic for golden files:
//
//	error SEM3210 box.cy:2:20 member refines a non-default, non-formal member
//
// Locations inside the built-in language package are dropped so goldens do
// not change with the prelude.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatLines(diags, fs, includeNotes, true)
}

// FormatShortDiagnostics is the same layout for `--format short`, keeping
// prelude locations.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatLines(diags, fs, includeNotes, false)
}

func formatLines(diags []*Diagnostic, fs *source.FileSet, includeNotes, skipBuiltin bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var entries []lineEntry
	add := func(sev, code string, span source.Span, msg string) {
		file := fs.Get(span.File)
		if file == nil || (skipBuiltin && file.Flags&source.FileBuiltin != 0) {
			return
		}
		start, _ := fs.Resolve(span)
		entries = append(entries, lineEntry{
			sev:  sev,
			code: code,
			path: cleanPath(file.FormatPath("relative", fs.BaseDir())),
			line: start.Line,
			col:  start.Col,
			msg:  oneLine(msg),
		})
	}
	for _, d := range diags {
		add(SeverityLabel(d.Severity), d.Code.ID(), d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code.ID(), n.Span, n.Msg)
		}
	}

	slices.SortStableFunc(entries, func(a, b lineEntry) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%s %s %s:%d:%d %s", e.sev, e.code, e.path, e.line, e.col, e.msg)
	}
	return strings.Join(lines, "\n")
}

func cleanPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// SeverityLabel returns the lowercase label used by line-oriented formats.
func SeverityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// oneLine folds any line breaks in msg into spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
