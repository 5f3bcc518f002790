package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"
)

var (
	// ErrManifestMissing is returned by LoadManifest when no refcheck.toml is found.
	ErrManifestMissing = errors.New("no refcheck.toml found")
	// ErrToolVersion is returned when [project].requires rejects the running version.
	ErrToolVersion = errors.New("refcheck version does not satisfy [project].requires")
)

// Manifest is a decoded refcheck.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the refcheck.toml layout.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Check   CheckConfig   `toml:"check"`
	Output  OutputConfig  `toml:"output"`
}

type ProjectConfig struct {
	Name     string `toml:"name"`
	Requires string `toml:"requires"`
}

type CheckConfig struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Jobs           int  `toml:"jobs"`
	DemotePriority int  `toml:"demote_priority"`
	Cache          bool `toml:"cache"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

// DefaultConfig returns the values used when neither the manifest nor flags set them.
func DefaultConfig() Config {
	return Config{
		Check: CheckConfig{
			MaxDiagnostics: 200,
		},
		Output: OutputConfig{
			Format: "pretty",
			Color:  "auto",
		},
	}
}

var validFormats = map[string]struct{}{
	"pretty": {},
	"short":  {},
	"json":   {},
	"yaml":   {},
	"sarif":  {},
}

var validColors = map[string]struct{}{
	"auto": {},
	"on":   {},
	"off":  {},
}

// LoadManifest finds refcheck.toml above startDir and decodes it.
// Returns ErrManifestMissing when there is none.
func LoadManifest(startDir string) (*Manifest, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrManifestMissing
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, nil
}

// LoadConfig decodes a manifest file on top of DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return Config{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [project].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0].String())
	}
	if req := strings.TrimSpace(cfg.Project.Requires); req != "" {
		if _, err := semver.NewConstraint(req); err != nil {
			return Config{}, fmt.Errorf("%s: invalid [project].requires %q: %w", path, req, err)
		}
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	if cfg.Check.DemotePriority < 0 {
		return Config{}, fmt.Errorf("%s: [check].demote_priority must not be negative", path)
	}
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if _, ok := validFormats[cfg.Output.Format]; !ok {
		return Config{}, fmt.Errorf("%s: unsupported [output].format %q", path, cfg.Output.Format)
	}
	cfg.Output.Color = strings.ToLower(strings.TrimSpace(cfg.Output.Color))
	if _, ok := validColors[cfg.Output.Color]; !ok {
		return Config{}, fmt.Errorf("%s: unsupported [output].color %q", path, cfg.Output.Color)
	}
	return cfg, nil
}

// CheckToolVersion проверяет [project].requires против версии инструмента.
// Пустое требование пропускает любую версию.
func (c Config) CheckToolVersion(toolVersion string) error {
	req := strings.TrimSpace(c.Project.Requires)
	if req == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(req)
	if err != nil {
		return fmt.Errorf("invalid [project].requires %q: %w", req, err)
	}
	v, err := semver.NewVersion(strings.TrimSpace(toolVersion))
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", toolVersion, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not match %q", ErrToolVersion, v.String(), req)
	}
	return nil
}

// DefaultManifest renders the refcheck.toml written by `refcheck init`.
func DefaultManifest(name, toolVersion string) string {
	var b strings.Builder
	b.WriteString("[project]\n")
	fmt.Fprintf(&b, "name = %q\n", name)
	if v, err := semver.NewVersion(toolVersion); err == nil {
		fmt.Fprintf(&b, "requires = %q\n", ">= "+v.String())
	}
	b.WriteString("\n[check]\n")
	b.WriteString("max_diagnostics = 200\n")
	b.WriteString("jobs = 0\n")
	b.WriteString("demote_priority = 0\n")
	b.WriteString("cache = false\n")
	b.WriteString("\n[output]\n")
	b.WriteString("format = \"pretty\"\n")
	b.WriteString("color = \"auto\"\n")
	return b.String()
}

// WriteDefaultManifest creates dir/refcheck.toml and refuses to overwrite an existing one.
func WriteDefaultManifest(dir, name, toolVersion string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %q: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(DefaultManifest(name, toolVersion)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}
	return path, nil
}
