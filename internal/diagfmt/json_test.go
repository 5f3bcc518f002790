package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"refcheck/internal/diag"
	"refcheck/internal/source"
)

func closedMemberBag(fs *source.FileSet) *diag.Bag {
	fileID := fs.AddVirtual("/work/src/box.cy", []byte(boxSource))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaRefinesClosedMember, sizeSpan(fileID), "member is not open for refinement").
		WithNote(source.Span{File: fileID, Start: 6, End: 9}, "refining type declared here").
		WithPriority(diag.PriorityClosedMember))
	bag.Add(diag.New(diag.SevWarning, diag.SemaRefinesWithoutActual, sizeSpan(fileID), "missing actual"))
	return bag
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	bag := closedMemberBag(fs)

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		RunID:            "run-1",
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 || output.RunID != "run-1" {
		t.Fatalf("unexpected header: %+v", output)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SEM3210" || d.Priority != 500 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Location == nil || d.Location.File != "box.cy" {
		t.Fatalf("unexpected location %+v", d.Location)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 20 || d.Location.EndCol != 24 {
		t.Errorf("unexpected positions %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "refining type declared here" || d.Notes[0].Location.StartCol != 7 {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
	if output.Diagnostics[1].Priority != 0 || output.Diagnostics[1].Severity != "WARNING" {
		t.Errorf("unexpected second diagnostic %+v", output.Diagnostics[1])
	}
}

func TestJSONWithoutPositionsAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	bag := closedMemberBag(fs)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeAbsolute}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var raw map[string][]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	first := raw["diagnostics"][0]
	if _, ok := first["notes"]; ok {
		t.Errorf("notes must be omitted")
	}
	loc := first["location"].(map[string]any)
	if _, ok := loc["start_line"]; ok {
		t.Errorf("positions must be omitted: %v", loc)
	}
	if loc["file"] != "/work/src/box.cy" {
		t.Errorf("unexpected file %v", loc["file"])
	}
	if _, ok := raw["diagnostics"][1]["priority"]; ok {
		t.Errorf("default priority must be omitted")
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	bag := closedMemberBag(fs)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Diagnostics[0].Code != "SEM3210" {
		t.Fatalf("unexpected output %+v", out)
	}
	if bag.Len() != 2 {
		t.Fatalf("limit must not touch the bag")
	}
}

func TestJSONFloatingTimings(t *testing.T) {
	fs := source.NewFileSet()
	prelude := fs.Add("<language>.cy", []byte("shared interface Object {}\n"), source.FileVirtual|source.FileBuiltin)
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{File: prelude}, "timings").
		WithNote(source.Span{File: prelude}, `{"kind":"check"}`))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true})
	d := out.Diagnostics[0]
	if d.Location != nil {
		t.Fatalf("floating diagnostic has no location: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location != nil {
		t.Fatalf("timing notes are kept without location: %+v", d.Notes)
	}
}
