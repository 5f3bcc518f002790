package diagfmt

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"refcheck/internal/diag"
	"refcheck/internal/source"
)

// YAML пишет тот же отчёт, что и JSON, в виде YAML-документа.
func YAML(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(bag, fs, opts)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
