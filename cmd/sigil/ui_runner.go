package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sigil/internal/demo"
	"sigil/internal/ui"
)

type demoOutcome struct {
	results []demo.Result
	err     error
}

// runDemoWithUI runs the samples behind a live budget display. Events flow
// from the runner into the model through a buffered channel; the runner
// closes the channel once every sample is done, which quits the program.
func runDemoWithUI(ctx context.Context, title string, samples []demo.Sample, opts demo.Options) ([]demo.Result, error) {
	events := make(chan demo.Event, 256)
	outcomeCh := make(chan demoOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = demo.ChannelSink{Ch: events}
		res, err := demo.Run(ctx, samples, optsCopy)
		outcomeCh <- demoOutcome{results: res, err: err}
		close(events)
	}()

	names := make([]string, len(samples))
	for i := range samples {
		names[i] = samples[i].Name
	}
	model := ui.NewRunModel(title, names, opts.Budget, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
