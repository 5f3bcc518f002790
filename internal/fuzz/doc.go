// Package fuzztests houses Go fuzz harnesses for the refcheck front end
// (source -> lexer -> parser) and for the whole check (bind + refinement).
// The goal is to guard against panics and hangs on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер,
// binder и проверку уточнений.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
