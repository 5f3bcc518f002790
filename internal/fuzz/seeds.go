package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"refcheck/internal/binder"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

// languageSeeds cover every declaration form and annotation of the source language.
var languageSeeds = []string{
	"",
	"package demo;\nshared interface I { shared formal Integer size; }\n",
	"shared class C() satisfies I { shared actual Integer size = 1; }\n",
	"shared abstract class A<T>() given T satisfies Object {\n    shared formal T get(T t);\n    shared default void reset() {}\n}\n",
	"shared class B() extends A<String>() {\n    shared actual String get(String t) => t;\n    shared actual variable Integer n = 0;\n}\n",
	"class X() {\n    shared actual Integer size { return 1; }\n    Integer local() { class Inner() {} return 0; }\n}\n",
	"shared interface S<out E> satisfies Iterable<E> & Comparable<S<E>> {}\n",
	"shared formal class F() {}\nactual class G() {}\n",
	"shared class Impl() extends Outer() {\n    shared actual class Node(Outer.Node p) extends Outer.Node(p.id) {}\n}\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	f.Add([]byte(binder.LanguageSource))
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.cy файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".cy" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
