package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"refcheck/internal/source"
)

func TestSarifLog(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/work")
	bag := closedMemberBag(fs)

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "refcheck", ToolVersion: "0.1.0", InvocationArgs: []string{"check", "src"}, RunID: "run-3"}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid sarif: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "refcheck" || run.AutomationDetails == nil || run.AutomationDetails.GUID != "run-3" {
		t.Fatalf("unexpected run metadata %+v", run)
	}
	if len(run.Tool.Driver.Rules) != 2 || run.Tool.Driver.Rules[0].ID != "SEM3209" || run.Tool.Driver.Rules[1].ID != "SEM3210" {
		t.Fatalf("rules must be unique and sorted: %+v", run.Tool.Driver.Rules)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("run with errors is not successful: %+v", run.Invocations)
	}

	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	first := run.Results[0]
	if first.Level != "error" || first.RuleID != "SEM3210" || first.Properties["priority"] != 500 {
		t.Fatalf("unexpected result %+v", first)
	}
	region := first.Locations[0].PhysicalLocation.Region
	if first.Locations[0].PhysicalLocation.ArtifactLocation.URI != "src/box.cy" || region.StartLine != 2 || region.StartColumn != 20 {
		t.Fatalf("unexpected location %+v", first.Locations[0])
	}
	if len(first.RelatedLocations) != 1 || first.RelatedLocations[0].Message.Text != "refining type declared here" {
		t.Fatalf("notes must become related locations: %+v", first.RelatedLocations)
	}
	if run.Results[1].Level != "warning" || run.Results[1].Properties != nil {
		t.Fatalf("unexpected second result %+v", run.Results[1])
	}
}
