package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"refcheck/internal/diag"
	"refcheck/internal/driver"
	"refcheck/internal/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags] <directory>",
		Short: "Re-run the check whenever a .cy file changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	f := cmd.Flags()
	f.String("format", "pretty", "output format (pretty|short|json|yaml|sarif)")
	f.Int("jobs", 0, "max parallel workers (0=auto)")
	f.Bool("with-notes", false, "include diagnostic notes in output")
	f.Bool("fullpath", false, "emit absolute file paths in output")
	f.Int("demote-priority", 0, "report errors with priority >= N as warnings (0 = off)")
	f.Duration("debounce", watch.DefaultDebounce, "quiet period before re-checking")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	st, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}
	s, err := loadSettings(cmd, dir)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	opts := s.driverOptions()
	runOnce := func(ctx context.Context, changed []string) {
		if len(changed) > 0 && !s.quiet {
			fmt.Fprintf(out, "\n== %s: %d file(s) changed ==\n", time.Now().Format(time.TimeOnly), len(changed))
		}
		res, err := driver.Check(ctx, dir, opts)
		if err != nil {
			if ctx.Err() == nil {
				fmt.Fprintf(errOut, "check failed: %v\n", err)
			}
			return
		}
		if err := renderDiagnostics(out, res, s, os.Args[1:]); err != nil {
			fmt.Fprintf(errOut, "failed to format diagnostics: %v\n", err)
		}
		summarizeWatchRun(out, res, s.quiet)
	}

	w, err := watch.New(dir, driver.SourceExt, debounce)
	if err != nil {
		return err
	}
	defer w.Close()
	w.OnError = func(err error) {
		fmt.Fprintf(errOut, "watch: %v\n", err)
	}

	ctx := cmd.Context()
	runOnce(ctx, nil)
	return w.Run(ctx, runOnce)
}

func summarizeWatchRun(out io.Writer, res *driver.Result, quiet bool) {
	if quiet {
		return
	}
	errs, warnings := 0, 0
	for _, d := range res.Bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warnings++
		}
	}
	fmt.Fprintf(out, "%d file(s), %d error(s), %d warning(s); watching for changes...\n", len(res.Files), errs, warnings)
}
