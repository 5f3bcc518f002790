package diagfmt

import (
	"refcheck/internal/source"
)

// formatPath renders the file path according to mode.
func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	default:
		return f.Path
	}
}

// hasLocation: пустой span во встроенном prelude означает "без места" (тайминги, ошибки кеша).
func hasLocation(fs *source.FileSet, span source.Span) bool {
	f := fs.Get(span.File)
	if f == nil {
		return false
	}
	return !(f.Flags&source.FileBuiltin != 0 && span.Empty())
}
