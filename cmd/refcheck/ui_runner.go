package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"refcheck/internal/buildpipeline"
	"refcheck/internal/driver"
	"refcheck/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI runs driver.Check in the background and renders its progress
// events until the run finishes.
func runCheckWithUI(ctx context.Context, out io.Writer, title, target string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, target, runOpts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// экран мог закрыться раньше (Ctrl+C): дочитываем события, чтобы проверка не зависла
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return outcome.result, outcome.err
	}
	return outcome.result, uiErr
}
