package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"refcheck/internal/diag"
	"refcheck/internal/source"
)

// Short печатает по одной строке на диагностику: "<sev> <CODE> path:line:col message".
// Диагностики без места в файле идут последними, без позиции.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, withNotes bool) error {
	located := make([]*diag.Diagnostic, 0, bag.Len())
	var floating []*diag.Diagnostic
	for _, d := range bag.Pointers() {
		if hasLocation(fs, d.Primary) {
			located = append(located, d)
		} else {
			floating = append(floating, d)
		}
	}

	var b strings.Builder
	if out := diag.FormatShortDiagnostics(located, fs, withNotes); out != "" {
		b.WriteString(out)
		b.WriteByte('\n')
	}
	for _, d := range floating {
		fmt.Fprintf(&b, "%s %s %s\n", diag.SeverityLabel(d.Severity), d.Code.ID(), d.Message)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
