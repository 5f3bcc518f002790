package buildpipeline

import (
	"path/filepath"
	"slices"
	"strings"
)

// DisplayFiles maps paths to the names shown by the progress UI: relative to
// baseDir when they live under it, slash-separated, sorted and unique.
func DisplayFiles(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	base := ""
	if strings.TrimSpace(baseDir) != "" {
		base = absOrSelf(baseDir)
	}
	out := make([]string, 0, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		out = append(out, displayName(filepath.Clean(file), base))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func displayName(path, base string) string {
	if base != "" {
		path = absOrSelf(path)
		rel, err := filepath.Rel(base, path)
		if err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
