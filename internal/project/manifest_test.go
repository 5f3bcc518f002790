package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"demo\"\n\n[check]\njobs = 3\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	file := filepath.Join(nested, "a.cy")
	if err := os.WriteFile(file, []byte("class A {}"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	for _, start := range []string{nested, file} {
		m, err := LoadManifest(start)
		if err != nil {
			t.Fatalf("LoadManifest(%s): %v", start, err)
		}
		if m.Root != root {
			t.Fatalf("root = %q, want %q", m.Root, root)
		}
		if m.Config.Project.Name != "demo" || m.Config.Check.Jobs != 3 {
			t.Fatalf("unexpected config: %+v", m.Config)
		}
		if m.Config.Check.MaxDiagnostics != 200 || m.Config.Output.Format != "pretty" || m.Config.Output.Color != "auto" {
			t.Fatalf("defaults not applied: %+v", m.Config)
		}
	}
}

func TestLoadManifestMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadManifest(dir); !errors.Is(err, ErrManifestMissing) {
		t.Fatalf("expected ErrManifestMissing, got %v", err)
	}
	root, ok, err := FindProjectRoot(dir)
	if err != nil || ok || root != "" {
		t.Fatalf("FindProjectRoot = %q, %v, %v", root, ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no project", "[check]\njobs = 1\n", "missing [project]"},
		{"no name", "[project]\nrequires = \">= 0.1.0\"\n", "missing [project].name"},
		{"bad toml", "[project\nname = 1\n", "failed to parse TOML"},
		{"unknown key", "[project]\nname = \"x\"\nflavour = \"y\"\n", "unknown key project.flavour"},
		{"bad constraint", "[project]\nname = \"x\"\nrequires = \"not a version\"\n", "invalid [project].requires"},
		{"negative jobs", "[project]\nname = \"x\"\n[check]\njobs = -1\n", "[check].jobs must not be negative"},
		{"format", "[project]\nname = \"x\"\n[output]\nformat = \"xml\"\n", "unsupported [output].format \"xml\""},
		{"color", "[project]\nname = \"x\"\n[output]\ncolor = \"sometimes\"\n", "unsupported [output].color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.text)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestCheckToolVersion(t *testing.T) {
	tests := []struct {
		requires string
		version  string
		ok       bool
	}{
		{"", "0.1.0", true},
		{">= 0.1.0", "0.1.0", true},
		{">= 0.2.0", "0.1.0", false},
		{"~0.1", "0.1.7", true},
		{"^1.0.0", "0.9.0", false},
	}
	for _, tt := range tests {
		cfg := Config{Project: ProjectConfig{Name: "x", Requires: tt.requires}}
		err := cfg.CheckToolVersion(tt.version)
		if tt.ok && err != nil {
			t.Fatalf("%q vs %s: unexpected error %v", tt.requires, tt.version, err)
		}
		if !tt.ok && !errors.Is(err, ErrToolVersion) {
			t.Fatalf("%q vs %s: expected ErrToolVersion, got %v", tt.requires, tt.version, err)
		}
	}
}

func TestWriteDefaultManifestRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefaultManifest(dir, "demo", "0.1.0")
	if err != nil {
		t.Fatalf("WriteDefaultManifest: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Project.Name != "demo" || cfg.Project.Requires != ">= 0.1.0" {
		t.Fatalf("unexpected project section: %+v", cfg.Project)
	}
	if err := cfg.CheckToolVersion("0.1.0"); err != nil {
		t.Fatalf("CheckToolVersion: %v", err)
	}
	if _, err := WriteDefaultManifest(dir, "demo", "0.1.0"); err == nil {
		t.Fatalf("expected overwrite to be refused")
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a, b := HashString("a"), HashString("b")
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("Combine should depend on order")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatalf("Combine should be deterministic")
	}
}
