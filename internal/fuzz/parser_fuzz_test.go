package fuzztests

import (
	"context"
	"testing"
	"time"

	"refcheck/internal/ast"
	"refcheck/internal/diag"
	"refcheck/internal/lexer"
	"refcheck/internal/parser"
	"refcheck/internal/source"
	"refcheck/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parseInput(input []byte) (*ast.Builder, ast.FileID, *source.File) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fuzz.cy", input)
	file := fs.Get(fileID)

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter, MaxErrors: 128})
	return builder, res.File, file
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		builder, fileID, file := parseInput(clampInput(input))
		if err := testkit.CheckSpanInvariants(builder, fileID, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// Error recovery must always consume at least one token.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("class C( {"))                        // unclosed parameter list
	f.Add([]byte("shared shared actual"))              // dangling annotations
	f.Add([]byte("class C() { Integer x = { { } ; }")) // unbalanced initializer
	f.Add([]byte("interface I<T given T satisfies"))   // truncated constraint
	f.Add([]byte("void f() => ;;;; }}}} >>>"))         // stray closers

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			parseInput(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
