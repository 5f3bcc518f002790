package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"refcheck/internal/diagfmt"
	"refcheck/internal/driver"
	"refcheck/internal/version"
)

// renderDiagnostics prints res.Bag in the configured format.
func renderDiagnostics(out io.Writer, res *driver.Result, s checkSettings, args []string) error {
	switch s.format {
	case "pretty":
		diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:        useColor(s.color),
			Context:      2,
			PathMode:     s.pathMode(),
			ShowNotes:    s.withNotes,
			ShowPriority: true,
		})
		return nil
	case "short":
		return diagfmt.Short(out, res.Bag, res.FileSet, s.withNotes)
	case "json":
		return diagfmt.JSON(out, res.Bag, res.FileSet, jsonOpts(res, s))
	case "yaml":
		return diagfmt.YAML(out, res.Bag, res.FileSet, jsonOpts(res, s))
	case "sarif":
		return diagfmt.Sarif(out, res.Bag, res.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "refcheck",
			ToolVersion:    version.Version,
			InvocationArgs: args,
			RunID:          res.RunID,
		})
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}
}

func jsonOpts(res *driver.Result, s checkSettings) diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         s.pathMode(),
		IncludeNotes:     s.withNotes,
		RunID:            res.RunID,
	}
}

type linkJSON struct {
	Member  string `json:"member" yaml:"member"`
	Refined string `json:"refined" yaml:"refined"`
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Line    uint32 `json:"line,omitempty" yaml:"line,omitempty"`
	Col     uint32 `json:"col,omitempty" yaml:"col,omitempty"`
}

type linksOutput struct {
	RunID string     `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Links []linkJSON `json:"links" yaml:"links"`
	Count int        `json:"count" yaml:"count"`
}

func buildLinksOutput(res *driver.Result, fullPath bool) linksOutput {
	links := res.Links()
	out := linksOutput{RunID: res.RunID, Links: make([]linkJSON, 0, len(links)), Count: len(links)}
	mode := "relative"
	if fullPath {
		mode = "absolute"
	}
	for _, l := range links {
		item := linkJSON{Member: l.Member, Refined: l.Refined}
		if f := res.FileSet.Get(l.Span.File); f != nil {
			pos := f.Position(l.Span.Start)
			item.File = f.FormatPath(mode, res.FileSet.BaseDir())
			item.Line = pos.Line
			item.Col = pos.Col
		}
		out.Links = append(out.Links, item)
	}
	return out
}

// renderLinks prints the member -> refined declaration table.
// Text formats print one "Member -> Refined" line per link.
func renderLinks(out io.Writer, res *driver.Result, format string, fullPath bool) error {
	data := buildLinksOutput(res, fullPath)
	switch format {
	case "json", "sarif":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, l := range data.Links {
			if _, err := fmt.Fprintf(out, "%s -> %s\n", l.Member, l.Refined); err != nil {
				return err
			}
		}
		return nil
	}
}
