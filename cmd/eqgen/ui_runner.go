package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"eqgen/internal/driver"
	"eqgen/internal/ui"
)

type generateOutcome struct {
	result *driver.Result
	err    error
}

// runGenerateWithUI drives Generate on a background goroutine while a
// Bubble Tea program consumes the phase events. The outcome channel
// keeps the result alive past the channel close that stops the UI.
func runGenerateWithUI(ctx context.Context, title string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.PhaseEvent, 256)
	outcomeCh := make(chan generateOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Observer = func(e driver.PhaseEvent) {
			events <- e
		}
		res, err := driver.Generate(ctx, optsCopy)
		outcomeCh <- generateOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
