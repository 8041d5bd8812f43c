// Package tasks_ui renders task events as a live list with a spinner on the
// running task.
package tasks_ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olimci/sprout/pkg/events"
)

// EventMsg carries one task event into the program.
type EventMsg events.Event

// DoneMsg ends the program once the work has returned.
type DoneMsg struct {
	Err error
}

// Handler forwards events to a running program.
type Handler struct {
	program *tea.Program
}

func (h Handler) Handle(event events.Event) {
	h.program.Send(EventMsg(event))
}

// Run calls work on its own goroutine and renders the events it reports until
// it returns. Pressing ctrl+c cancels the context given to work.
func Run(ctx context.Context, in io.Reader, out io.Writer, work func(context.Context, events.Handler) error) error {
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(cancel)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	done := make(chan error, 1)
	go func() {
		err := work(workCtx, Handler{program: program})
		done <- err
		program.Send(DoneMsg{Err: err})
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		if workErr := <-done; workErr != nil {
			return workErr
		}
		return fmt.Errorf("running task ui: %w", err)
	}

	return <-done
}

type row struct {
	title  string
	kind   events.Kind
	reason string
	err    error
}

type Model struct {
	rows    []row
	spinner spinner.Model
	styles  uiStyles
	cancel  context.CancelFunc

	interrupted bool
	done        bool
}

// NewModel builds the model. cancel, which may be nil, is called on ctrl+c.
func NewModel(cancel context.CancelFunc) *Model {
	styles := initStyles()
	return &Model{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.pending)),
		styles:  styles,
		cancel:  cancel,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case tea.KeyMsg:
		if x.String() == "ctrl+c" && !m.interrupted {
			m.interrupted = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case EventMsg:
		m.apply(events.Event(x))
		return m, nil

	case DoneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(x)
		return m, cmd
	}

	return m, nil
}

func (m *Model) apply(event events.Event) {
	r := row{title: event.Title, kind: event.Kind, reason: event.Reason, err: event.Error}
	for i := range m.rows {
		if m.rows[i].title == event.Title {
			m.rows[i] = r
			return
		}
	}
	m.rows = append(m.rows, r)
}

func (m *Model) View() string {
	var b strings.Builder

	for _, r := range m.rows {
		switch r.kind {
		case events.TaskStarted:
			icon := m.spinner.View()
			if m.done {
				icon = m.styles.pending.Render("•")
			}
			fmt.Fprintf(&b, "%s %s\n", icon, m.styles.title.Render(r.title))
		case events.TaskSucceeded:
			fmt.Fprintf(&b, "%s %s\n", m.styles.success.Render("✔"), m.styles.title.Render(r.title))
		case events.TaskSkipped:
			fmt.Fprintf(&b, "%s %s %s\n", m.styles.skipped.Render("↓"), m.styles.title.Render(r.title), m.styles.skipped.Render("[skipped]"))
			if r.reason != "" {
				b.WriteString(m.styles.reason.Render("→ "+r.reason) + "\n")
			}
		case events.TaskFailed:
			fmt.Fprintf(&b, "%s %s\n", m.styles.failure.Render("✖"), m.styles.title.Render(r.title))
			if r.err != nil {
				b.WriteString(m.styles.err.Render("→ "+r.err.Error()) + "\n")
			}
		}
	}

	if m.interrupted && !m.done {
		b.WriteString(m.styles.reason.Render("cancelling...") + "\n")
	}

	return b.String()
}
