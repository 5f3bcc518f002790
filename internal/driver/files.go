package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of checked source files.
const SourceExt = ".cy"

// ListSourceFiles возвращает отсортированный список всех *.cy файлов в директории.
// Скрытые каталоги (".git", ".cache") пропускаются.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// resolveTarget turns a file or directory argument into the file list and base dir.
func resolveTarget(target string) (files []string, baseDir string, err error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat %q: %w", target, err)
	}
	if !info.IsDir() {
		return []string{target}, filepath.Dir(target), nil
	}
	files, err = ListSourceFiles(target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list %q: %w", target, err)
	}
	return files, target, nil
}
