package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"refcheck/internal/diag"
	"refcheck/internal/source"
)

const tabWidth = 4

type palette struct {
	err    *color.Color
	warn   *color.Color
	info   *color.Color
	note   *color.Color
	code   *color.Color
	path   *color.Color
	caret  *color.Color
	gutter *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgCyan),
		code:   mk(color.FgMagenta),
		path:   mk(color.Bold),
		caret:  mk(color.FgGreen, color.Bold),
		gutter: mk(color.FgBlue),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err.Sprint(sev.String())
	case diag.SevWarning:
		return p.warn.Sprint(sev.String())
	default:
		return p.info.Sprint(sev.String())
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() в порядке добавления.
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &items[i], fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	var header strings.Builder
	if loc, ok := locationLabel(fs, d.Primary, opts.PathMode); ok {
		header.WriteString(p.path.Sprint(loc))
		header.WriteString(": ")
	}
	header.WriteString(p.severity(d.Severity))
	header.WriteByte(' ')
	header.WriteString(p.code.Sprint(d.Code.ID()))
	header.WriteString(": ")
	header.WriteString(d.Message)
	if opts.ShowPriority && d.Priority != diag.PriorityDefault {
		header.WriteString(" [priority " + strconv.Itoa(int(d.Priority)) + "]")
	}
	fmt.Fprintln(w, header.String())

	if hasLocation(fs, d.Primary) {
		writeSnippet(w, fs, d.Primary, int(opts.Context), opts.Width, p)
	}

	if !opts.ShowNotes && d.Code != diag.ObsTimings {
		return
	}
	for _, note := range d.Notes {
		label := p.note.Sprint("note")
		if loc, ok := locationLabel(fs, note.Span, opts.PathMode); ok {
			fmt.Fprintf(w, "  %s: %s: %s\n", label, p.path.Sprint(loc), note.Msg)
			writeSnippet(w, fs, note.Span, 0, opts.Width, p)
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", label, note.Msg)
	}
}

func locationLabel(fs *source.FileSet, span source.Span, mode PathMode) (string, bool) {
	if !hasLocation(fs, span) {
		return "", false
	}
	f := fs.Get(span.File)
	start := f.Position(span.Start)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col), true
}

// writeSnippet печатает строку span'а (и context строк перед ней) с подчёркиванием.
// Колонки считаются в ширине экрана: табы раскрываются, широкие руны занимают две клетки.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int, width uint8, p palette) {
	f := fs.Get(span.File)
	start := f.Position(span.Start)
	end := f.Position(span.End)
	if context < 0 {
		context = 0
	}
	first := uint32(1)
	if start.Line > uint32(context) {
		first = start.Line - uint32(context)
	}
	gutterWidth := len(strconv.FormatUint(uint64(start.Line), 10))
	blank := strings.Repeat(" ", gutterWidth)

	for ln := first; ln <= start.Line; ln++ {
		text := expandTabs(f.GetLine(ln))
		if width > 0 {
			text = runewidth.Truncate(text, int(width), "…")
		}
		fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprintf("%*d", gutterWidth, ln), p.gutter.Sprint("|"), text)
	}

	line := f.GetLine(start.Line)
	from := clampCol(start.Col-1, line)
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(end.Col-1, line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:from]))
	marks := runewidth.StringWidth(expandTabs(line[from:to]))
	if marks < 1 {
		marks = 1
	}
	if width > 0 && pad+marks > int(width) {
		if pad >= int(width) {
			return
		}
		marks = int(width) - pad
	}
	underline := "^" + strings.Repeat("~", marks-1)
	fmt.Fprintf(w, " %s %s %s%s\n", blank, p.gutter.Sprint("|"), strings.Repeat(" ", pad), p.caret.Sprint(underline))
}

func clampCol(col uint32, line string) int {
	if int(col) > len(line) {
		return len(line)
	}
	return int(col)
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
