package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokereval/internal/simulator"
	"github.com/lox/pokereval/poker"
)

type progressMsg struct {
	done, total int
}

type finishedMsg struct {
	result *simulator.Result
	err    error
}

// progressModel draws a progress bar while a simulation runs.
type progressModel struct {
	bar    progress.Model
	done   int
	total  int
	cancel context.CancelFunc

	result *simulator.Result
	err    error
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// The run stops at its next checkpoint and reports back.
			m.cancel()
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(10, min(msg.Width-4, 60))
	case progressMsg:
		m.done, m.total = msg.done, msg.total
	case finishedMsg:
		m.result, m.err = msg.result, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	return fmt.Sprintf("\n  %s\n  %s\n",
		m.bar.ViewAs(pct),
		dimStyle.Render(fmt.Sprintf("%d / %d samples", m.done, m.total)))
}

// runWithProgress runs a simulation while drawing a progress bar on stderr.
func runWithProgress(ctx context.Context, cfg simulator.Config, tables *poker.Tables) (*simulator.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(progressModel{
		bar:    progress.New(progress.WithDefaultGradient()),
		total:  cfg.Samples,
		cancel: cancel,
	}, tea.WithOutput(os.Stderr))

	cfg.Progress = func(done, total int) {
		p.Send(progressMsg{done: done, total: total})
	}
	sim, err := simulator.New(cfg, tables)
	if err != nil {
		return nil, err
	}

	go func() {
		res, err := sim.Run(ctx)
		p.Send(finishedMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(progressModel)
	return m.result, m.err
}
