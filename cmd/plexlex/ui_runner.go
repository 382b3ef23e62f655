package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"plexlex/internal/driver"
	"plexlex/internal/source"
	"plexlex/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// runTokenizeDirWithUI runs driver.TokenizeDir while a progress view renders
// its events. files is the listing shown before the run starts.
func runTokenizeDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.TokenizeDirResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()

	var outcome dirOutcome
	select {
	case outcome = <-outcomeCh:
	default:
		// the view was closed before the run finished
		cancel()
		go func() {
			for range events {
			}
		}()
		outcome = <-outcomeCh
	}
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
