package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"refcheck/internal/buildpipeline"
	"refcheck/internal/driver"
)

const cacheApp = "refcheck"

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.cy|directory>",
		Short: "Check refinement consistency of a source file or directory",
		Long:  `Check validates shared/formal/default/actual annotations and refined member signatures in a .cy file or in every *.cy file under a directory`,
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
	f := cmd.Flags()
	f.String("format", "pretty", "output format (pretty|short|json|yaml|sarif)")
	f.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	f.Bool("no-warnings", false, "ignore warnings in diagnostics")
	f.Bool("warnings-as-errors", false, "treat warnings as errors")
	f.Bool("with-notes", false, "include diagnostic notes in output")
	f.Bool("fullpath", false, "emit absolute file paths in output")
	f.Bool("cache", false, "reuse per-file results from the disk cache")
	f.Bool("clear-cache", false, "drop the disk cache before checking")
	f.String("ui", "auto", "progress UI for directories (auto|on|off)")
	f.Bool("emit-links", false, "print refined declaration links after diagnostics")
	f.Int("demote-priority", 0, "report errors with priority >= N as warnings (0 = off)")
	return cmd
}

// runCheck executes the "check" command and returns errDiagnostics when
// error diagnostics remain after filtering.
func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	s, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	color.NoColor = !useColor(s.color)

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	emitLinks, err := cmd.Flags().GetBool("emit-links")
	if err != nil {
		return fmt.Errorf("failed to get emit-links flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}

	opts := s.driverOptions()
	if s.cache || clearCache {
		cache, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			// кеш необязателен: работаем без него
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", err)
		} else {
			if clearCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
			}
			if s.cache {
				opts.Cache = cache
			}
		}
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var res *driver.Result
	if st.IsDir() && s.format == "pretty" && !s.quiet && shouldUseTUI(mode) {
		files, err := driver.ListSourceFiles(target)
		if err != nil {
			return fmt.Errorf("failed to list %q: %w", target, err)
		}
		res, err = runCheckWithUI(cmd.Context(), cmd.OutOrStdout(), "checking "+target, target, buildpipeline.DisplayFiles(files, target), opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	} else {
		res, err = driver.Check(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if err := renderDiagnostics(out, res, s, os.Args[1:]); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if emitLinks {
		if s.format == "pretty" && !s.quiet {
			fmt.Fprintln(out, "== links ==")
		}
		if err := renderLinks(out, res, s.format, s.fullPath); err != nil {
			return fmt.Errorf("failed to format links: %w", err)
		}
	}
	if s.timings && !s.quiet {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if !s.quiet && s.format == "pretty" && res.Bag.Len() == 0 {
		fmt.Fprintf(out, "%s: %d file(s), no refinement issues\n", target, len(res.Files))
	}

	if res.HasErrors() {
		return errDiagnostics
	}
	return nil
}
