package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"refcheck/internal/prof"
)

var (
	profMu      sync.Mutex
	profSession *prof.Session
)

// setupProfiling inspects persistent profiling flags and starts the
// requested profilers; stopProfiling finishes them.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Flags()

	cpuProfile, err := flags.GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := flags.GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := flags.GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	opts := prof.Options{CPU: cpuProfile, Mem: memProfile, Trace: tracePath}
	if !opts.Enabled() {
		return nil
	}
	s, err := prof.Start(opts)
	if err != nil {
		return err
	}
	profMu.Lock()
	profSession = s
	profMu.Unlock()
	return nil
}

func stopProfiling(cmd *cobra.Command) {
	profMu.Lock()
	s := profSession
	profSession = nil
	profMu.Unlock()
	if err := s.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
	}
}
