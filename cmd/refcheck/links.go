package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"refcheck/internal/diagfmt"
	"refcheck/internal/driver"
)

func newLinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links [flags] <file.cy|directory>",
		Short: "Print refined declaration links of every type member",
		Long: `Links runs the checker and prints, for every member that refines an inherited
declaration, the link "Type.member -> Supertype.member". Diagnostics go to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: runLinks,
	}
	cmd.Flags().String("format", "text", "output format (text|json|yaml)")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in json/yaml output")
	return cmd
}

func runLinks(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q (must be text, json or yaml)", format)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	res, err := driver.Check(cmd.Context(), args[0], driver.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if err := renderLinks(cmd.OutOrStdout(), res, format, fullPath); err != nil {
		return fmt.Errorf("failed to format links: %w", err)
	}
	if !quiet && res.Bag.Len() > 0 {
		if err := diagfmt.Short(cmd.ErrOrStderr(), res.Bag, res.FileSet, false); err != nil {
			return err
		}
	}
	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}
