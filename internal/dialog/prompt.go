package dialog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var ErrCancelled = errors.New("mode selection cancelled")

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// Prompt asks the operator for the run mode.
type Prompt struct {
	state State
	mode  Mode
	err   string
}

func NewPrompt() Prompt { return Prompt{state: StateChoosing} }

func (p Prompt) State() State { return p.state }
func (p Prompt) Mode() Mode   { return p.mode }

func (p Prompt) Init() tea.Cmd { return nil }

func (p Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch km.String() {
	case "ctrl+c", "esc", "q":
		p.state = StateCancelled
		return p, tea.Quit
	}
	mode, err := ParseMode(km.String())
	if err != nil {
		p.err = "Invalid option. Please type 1 or 2."
		return p, nil
	}
	p.mode = mode
	p.state = StateChosen
	p.err = ""
	return p, tea.Quit
}

func (p Prompt) View() string {
	if p.state != StateChoosing {
		return ""
	}
	view := boxStyle.Render(menu())
	if p.err != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, errStyle.Render(p.err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, hintStyle.Render("Type 1 or 2 (q to quit)"))
}

func menu() string {
	return strings.Join([]string{
		titleStyle.Render("Which mode should this run use?"),
		"",
		"  1 - CREATE (Sunday run)",
		hintStyle.Render("      Creates every card, the detailed report and the weekly backlog."),
		"",
		"  2 - REPORT (Monday to Friday)",
		hintStyle.Render("      Mails the D+1 report from the existing backlog."),
	}, "\n")
}

// terminal reports whether in is an interactive terminal.
func terminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Ask asks for the run mode until a valid one is chosen. On a terminal it
// runs the interactive prompt; otherwise it reads lines from in, and running
// out of input returns ErrCancelled.
func Ask(in io.Reader, out io.Writer) (Mode, error) {
	if !terminal(in) {
		return askLines(in, out)
	}
	final, err := tea.NewProgram(NewPrompt(), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", err
	}
	p, ok := final.(Prompt)
	if !ok || p.state != StateChosen {
		return "", ErrCancelled
	}
	return p.mode, nil
}

func askLines(in io.Reader, out io.Writer) (Mode, error) {
	_, _ = fmt.Fprintln(out, menu())
	sc := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, "Type 1 or 2: ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", ErrCancelled
		}
		mode, err := ParseMode(sc.Text())
		if err == nil {
			return mode, nil
		}
		_, _ = fmt.Fprintln(out, errStyle.Render("Invalid option. Please type 1 or 2."))
	}
}

type pause struct{ text string }

func (p pause) Init() tea.Cmd { return nil }

func (p pause) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter, tea.KeyCtrlC, tea.KeyEsc:
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p pause) View() string { return hintStyle.Render(p.text) }

// WaitForEnter blocks until the operator presses ENTER. Without a terminal it
// waits for one line and returns at once when in is exhausted.
func WaitForEnter(in io.Reader, out io.Writer, text string) error {
	if !terminal(in) {
		_, _ = fmt.Fprintln(out, text)
		_, err := bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	_, err := tea.NewProgram(pause{text: text}, tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}
