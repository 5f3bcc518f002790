package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual marks files added from memory (tests, stdin, prelude).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileBuiltin marks the built-in language prelude.
	FileBuiltin
)

// File captures metadata and content for a single source file.
type File struct {
	ID         FileID
	Path       string
	Content    []byte
	LineStarts []uint32
	Hash       [32]byte
	Flags      FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
