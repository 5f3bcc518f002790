package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"refcheck/internal/diagfmt"
	"refcheck/internal/driver"
	"refcheck/internal/project"
	"refcheck/internal/version"
)

// checkSettings is the merged view of refcheck.toml and command-line flags.
// Flags always win over the manifest.
type checkSettings struct {
	manifest         *project.Manifest
	format           string
	color            uiMode
	quiet            bool
	timings          bool
	maxDiagnostics   int
	jobs             int
	demotePriority   int
	cache            bool
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	fullPath         bool
}

// loadSettings finds the manifest for target (if any), checks the tool version
// against it and applies flag overrides. Only flags the command defines are read.
func loadSettings(cmd *cobra.Command, target string) (checkSettings, error) {
	cfg := project.DefaultConfig()
	var s checkSettings

	manifest, err := project.LoadManifest(target)
	switch {
	case errors.Is(err, project.ErrManifestMissing):
	case err != nil:
		return s, err
	default:
		if err := manifest.Config.CheckToolVersion(version.Version); err != nil {
			return s, fmt.Errorf("%s: %w", manifest.Path, err)
		}
		cfg = manifest.Config
		s.manifest = manifest
	}

	s.format = cfg.Output.Format
	s.maxDiagnostics = cfg.Check.MaxDiagnostics
	s.jobs = cfg.Check.Jobs
	s.demotePriority = cfg.Check.DemotePriority
	s.cache = cfg.Check.Cache
	colorValue := cfg.Output.Color

	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("format") {
		if s.format, err = flags.GetString("format"); err != nil {
			return s, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if changed("color") {
		if colorValue, err = flags.GetString("color"); err != nil {
			return s, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if changed("max-diagnostics") {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if changed("jobs") {
		if s.jobs, err = flags.GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if changed("demote-priority") {
		if s.demotePriority, err = flags.GetInt("demote-priority"); err != nil {
			return s, fmt.Errorf("failed to get demote-priority flag: %w", err)
		}
	}
	if changed("cache") {
		if s.cache, err = flags.GetBool("cache"); err != nil {
			return s, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"quiet", &s.quiet},
		{"timings", &s.timings},
		{"no-warnings", &s.noWarnings},
		{"warnings-as-errors", &s.warningsAsErrors},
		{"with-notes", &s.withNotes},
		{"fullpath", &s.fullPath},
	}
	for _, b := range bools {
		if flags.Lookup(b.name) == nil {
			continue
		}
		if *b.dst, err = flags.GetBool(b.name); err != nil {
			return s, fmt.Errorf("failed to get %s flag: %w", b.name, err)
		}
	}

	s.format = strings.ToLower(strings.TrimSpace(s.format))
	switch s.format {
	case "pretty", "short", "json", "yaml", "sarif":
	default:
		return s, fmt.Errorf("unknown format: %s", s.format)
	}
	if s.color, err = readColorMode(colorValue); err != nil {
		return s, err
	}
	if s.noWarnings && s.warningsAsErrors {
		return s, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if s.maxDiagnostics < 0 || s.jobs < 0 || s.demotePriority < 0 {
		return s, fmt.Errorf("negative values are not allowed for --max-diagnostics/--jobs/--demote-priority")
	}
	return s, nil
}

func (s checkSettings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics:   s.maxDiagnostics,
		Jobs:             s.jobs,
		IgnoreWarnings:   s.noWarnings,
		WarningsAsErrors: s.warningsAsErrors,
		DemotePriority:   s.demotePriority,
		EnableTimings:    s.timings,
	}
}

func (s checkSettings) pathMode() diagfmt.PathMode {
	if s.fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}
