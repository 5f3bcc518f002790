package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"refcheck/internal/version"
)

// errDiagnostics is returned when error diagnostics were already printed;
// main turns it into exit status 1 without further output.
var errDiagnostics = errors.New("diagnostics reported errors")

// newRootCmd собирает дерево команд. Отдельная функция, чтобы тесты получали чистые флаги.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "refcheck",
		Short:         "Refinement consistency checker",
		Long:          `refcheck validates member refinement (shared/formal/default/actual) across class and interface hierarchies`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			colorFlag, err := cmd.Flags().GetString("color")
			if err != nil {
				return err
			}
			mode, err := readColorMode(colorFlag)
			if err != nil {
				return err
			}
			color.NoColor = !useColor(mode)
			if err := setupProfiling(cmd); err != nil {
				return err
			}
			return setupTracing(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeTracing(cmd)
			stopProfiling(cmd)
		},
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 200, "maximum number of diagnostics to show (0 = unlimited)")
	pf.String("trace", "", "write trace events to file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode ring|both")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLinksCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// main runs the root command; any returned error maps to exit status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	// PersistentPostRun не вызывается, если RunE вернул ошибку
	closeTracing(rootCmd)
	stopProfiling(rootCmd)
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			rootCmd.PrintErrln("error:", err)
		}
		stop()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
