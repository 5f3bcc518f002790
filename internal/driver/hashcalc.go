package driver

import (
	"strconv"

	"refcheck/internal/project"
	"refcheck/internal/source"
	"refcheck/internal/version"
)

// programDigest: H(tool || opts || path1 || hash1 || path2 || hash2 ...).
// Связывание общее для всех файлов, поэтому результат файла зависит от всей программы;
// FileID в закешированных span'ах совпадают, пока совпадает порядок файлов.
func programDigest(fs *source.FileSet, ids []source.FileID, maxDiagnostics int) project.Digest {
	deps := make([]project.Digest, 0, 2*len(ids)+1)
	deps = append(deps, project.HashString("max_diagnostics="+strconv.Itoa(maxDiagnostics)))
	for _, id := range ids {
		f := fs.Get(id)
		deps = append(deps, project.HashString(f.Path), project.Digest(f.Hash))
	}
	tool := project.HashString("refcheck " + version.Version + " schema " + strconv.Itoa(int(diskCacheSchemaVersion)))
	return project.Combine(tool, deps...)
}

// fileKey - ключ кеша одного файла внутри конкретной программы.
func fileKey(f *source.File, program project.Digest) project.Digest {
	return project.Combine(project.Digest(f.Hash), program)
}
