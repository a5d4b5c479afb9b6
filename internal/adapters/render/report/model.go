package report

import (
	"errors"
	"io"

	"github.com/bnema/versiondb-watch/internal/application"
	"github.com/bnema/versiondb-watch/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	view   func(styles) string
	styles styles
	output string
}

func newModel(view func(styles) string) model {
	return model{
		view:   view,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func render(view func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(view),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// RenderResults summarizes one check run.
func RenderResults(results []application.CheckResult, opts Options) (string, error) {
	return render(func(s styles) string {
		return resultsView(results, opts, s)
	})
}

// RenderVersions lists recorded versions grouped by channel.
func RenderVersions(groups []application.ChannelVersions, opts Options) (string, error) {
	return render(func(s styles) string {
		return versionsView(groups, opts, s)
	})
}

// RenderHistory lists journaled checks, newest first.
func RenderHistory(entries []ports.JournalEntry, opts Options) (string, error) {
	return render(func(s styles) string {
		return historyView(entries, opts, s)
	})
}
