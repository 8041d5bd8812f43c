package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olimci/sprout/pkg/events"
	"github.com/olimci/sprout/pkg/scaffold"
)

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// linePrinter writes one line per task event. Output is colored only when the
// writer is a terminal.
type linePrinter struct {
	out io.Writer
	mu  sync.Mutex

	kindStyles  map[events.Kind]lipgloss.Style
	titleStyle  lipgloss.Style
	reasonStyle lipgloss.Style
}

func newLinePrinter(out io.Writer) *linePrinter {
	p := &linePrinter{out: out}

	if !isTerminal(out) {
		return p
	}

	p.kindStyles = map[events.Kind]lipgloss.Style{
		events.TaskStarted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")), // blue
		events.TaskSkipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")), // yellow
		events.TaskSucceeded: lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")), // green
		events.TaskFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")), // red
	}
	p.titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))  // text
	p.reasonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")) // muted
	return p
}

func (p *linePrinter) Handle(event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := formatEventPlain(event)
	if kindStyle, ok := p.kindStyles[event.Kind]; ok {
		line = formatEventRich(event, kindStyle, p.titleStyle, p.reasonStyle)
	}

	fmt.Fprintln(p.out, line)
}

func formatEventPlain(event events.Event) string {
	var b strings.Builder

	b.WriteString("[")
	b.WriteString(event.Kind.String())
	b.WriteString("] ")
	b.WriteString(event.Title)

	switch {
	case event.Kind == events.TaskSkipped && event.Reason != "":
		b.WriteString(" (")
		b.WriteString(event.Reason)
		b.WriteString(")")
	case event.Kind == events.TaskFailed && event.Error != nil:
		b.WriteString(": ")
		b.WriteString(event.Error.Error())
	}

	return b.String()
}

func formatEventRich(event events.Event, kindStyle, titleStyle, reasonStyle lipgloss.Style) string {
	var b strings.Builder

	b.WriteString(kindStyle.Render("[" + event.Kind.String() + "]"))
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(event.Title))

	switch {
	case event.Kind == events.TaskSkipped && event.Reason != "":
		b.WriteString(" ")
		b.WriteString(reasonStyle.Render("(" + event.Reason + ")"))
	case event.Kind == events.TaskFailed && event.Error != nil:
		b.WriteString(": ")
		b.WriteString(kindStyle.Render(event.Error.Error()))
	}

	return b.String()
}

var (
	doneBadge  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a6e3a1"))
	errorBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f38ba8"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
)

func badge(out io.Writer, style lipgloss.Style, text string) string {
	if !isTerminal(out) {
		return text
	}
	return style.Render(text)
}

// printDone writes the success banner and, when the project is not in the
// working directory, how to get there.
func printDone(out io.Writer, result *scaffold.Result) {
	fmt.Fprintf(out, "%s Project ready\n", badge(out, doneBadge, "DONE"))

	if result == nil {
		return
	}
	if rel := relativeTarget(result.Target); rel != "." {
		fmt.Fprintln(out)
		fmt.Fprintln(out, badge(out, hintStyle, "Next steps:"))
		fmt.Fprintf(out, "  cd %s\n", rel)
	}
}

// printError writes the failure banner for err.
func printError(out io.Writer, err error) {
	fmt.Fprintf(out, "%s %s\n", badge(out, errorBadge, "ERROR"), errorMessage(err))
}

func errorMessage(err error) string {
	var notFound *scaffold.TemplateNotFoundError
	switch {
	case errors.As(err, &notFound):
		return "Invalid template name\n  " + err.Error()
	case errors.Is(err, scaffold.ErrIncompatibleTemplate):
		return "Incompatible template\n  " + err.Error()
	default:
		return err.Error()
	}
}
