package fuzztests

import (
	"testing"

	"refcheck/internal/diag"
	"refcheck/internal/lexer"
	"refcheck/internal/source"
	"refcheck/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.cy", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		// каждый токен продвигает курсор, иначе лексер зациклится
		for n := 0; ; n++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if n > len(file.Content)+1 {
				t.Fatalf("lexer does not make progress on %q", truncateForLog(input, 200))
			}
			if int(tok.Span.End) > len(file.Content) || tok.Span.Start > tok.Span.End {
				t.Fatalf("token span %v out of bounds", tok.Span)
			}
		}
	})
}
