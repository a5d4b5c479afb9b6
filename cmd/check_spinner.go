package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/versiondb-watch/internal/application"
	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const checkIdleLabel = "Checking for updates..."

var (
	outcomeOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	outcomeNewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	outcomeFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type checkStartedMsg struct {
	target domain.MonitorTarget
}

type checkFinishedMsg struct {
	result application.CheckResult
}

type checkDoneMsg struct {
	err error
}

// checkSpinnerModel shows the target being checked and one line per target
// already finished.
type checkSpinnerModel struct {
	spinner  spinner.Model
	label    string
	outcomes []string
	check    tea.Cmd
	err      error
	done     bool
}

func newCheckSpinnerModel(check tea.Cmd) checkSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return checkSpinnerModel{
		spinner: s,
		label:   checkIdleLabel,
		check:   check,
	}
}

func (m checkSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.check)
}

func (m checkSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case checkStartedMsg:
		m.label = checkingLabel(msg.target)
		return m, nil
	case checkFinishedMsg:
		m.outcomes = append(m.outcomes, checkOutcome(msg.result))
		m.label = checkIdleLabel
		return m, nil
	case checkDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m checkSpinnerModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	for _, outcome := range m.outcomes {
		b.WriteString(outcome)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%s %s", m.spinner.View(), m.label)
	return b.String()
}

func checkingLabel(target domain.MonitorTarget) string {
	return fmt.Sprintf("Checking %s (%s)...", target.IdentityName(), target.Channel)
}

func checkOutcome(result application.CheckResult) string {
	name := fmt.Sprintf("%s (%s)", result.Target.IdentityName(), result.Target.Channel)
	switch {
	case result.Err != nil:
		return outcomeFailStyle.Render("x "+name+" failed") + ": " + result.Err.Error()
	case result.Novel:
		return outcomeNewStyle.Render("+ "+name+" "+result.NewVersion)
	default:
		return outcomeOKStyle.Render("  " + name + " up to date")
	}
}

// checkProgress forwards service progress to a running spinner program.
type checkProgress struct {
	program *tea.Program
}

func (p *checkProgress) TargetStarted(target domain.MonitorTarget) {
	p.send(checkStartedMsg{target: target})
}

func (p *checkProgress) TargetFinished(result application.CheckResult) {
	p.send(checkFinishedMsg{result: result})
}

func (p *checkProgress) send(msg tea.Msg) {
	if p.program != nil {
		p.program.Send(msg)
	}
}

// runCheckSpinner runs check behind a spinner. A non-nil progress is bound
// to the program before check starts.
func runCheckSpinner(ctx context.Context, output io.Writer, progress *checkProgress, check func(context.Context) error) error {
	checkCmd := func() tea.Msg {
		return checkDoneMsg{err: check(ctx)}
	}

	p := tea.NewProgram(
		newCheckSpinnerModel(checkCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)
	if progress != nil {
		progress.program = p
	}

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(checkSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
