package driver

import (
	"refcheck/internal/diag"
	"refcheck/internal/source"
)

// fileRouter отправляет диагностику в bag файла её основного span'а.
// Используется фазой bind, которая видит все файлы сразу и работает в одной горутине.
type fileRouter struct {
	bags     map[source.FileID]*diag.Bag
	fallback *diag.Bag
}

func (r fileRouter) Report(code diag.Code, sev diag.Severity, prio diag.Priority, primary source.Span, msg string, notes []diag.Note) {
	bag := r.bags[primary.File]
	if bag == nil {
		bag = r.fallback
	}
	diag.BagReporter{Bag: bag}.Report(code, sev, prio, primary, msg, notes)
}
