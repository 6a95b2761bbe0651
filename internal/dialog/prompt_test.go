package dialog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPromptChoosesMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
	}{
		{"1", ModeCreate},
		{"2", ModeReport},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m, cmd := NewPrompt().Update(key(tc.in))
			p := m.(Prompt)
			if p.State() != StateChosen {
				t.Fatalf("Expected chosen, got %s", p.State())
			}
			if p.Mode() != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, p.Mode())
			}
			if cmd == nil {
				t.Error("Expected quit command")
			}
		})
	}
}

func TestPromptRejectsInvalidInput(t *testing.T) {
	m, cmd := NewPrompt().Update(key("7"))
	p := m.(Prompt)
	if p.State() != StateChoosing {
		t.Fatalf("Expected to keep choosing, got %s", p.State())
	}
	if cmd != nil {
		t.Error("Expected no command on invalid input")
	}
	if !strings.Contains(p.View(), "Invalid option") {
		t.Errorf("Expected error in view, got:\n%s", p.View())
	}

	m, _ = p.Update(key("2"))
	if m.(Prompt).Mode() != ModeReport {
		t.Errorf("Expected report after retry, got %s", m.(Prompt).Mode())
	}
}

func TestPromptCancel(t *testing.T) {
	m, cmd := NewPrompt().Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.(Prompt).State() != StateCancelled {
		t.Errorf("Expected cancelled, got %s", m.(Prompt).State())
	}
	if cmd == nil {
		t.Error("Expected quit command")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"1": ModeCreate, " CREATE ": ModeCreate, "report": ModeReport, "2": ModeReport} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseMode("3"); err == nil {
		t.Error("Expected error for 3")
	}
}

func TestAskWithoutTerminal(t *testing.T) {
	testCases := []struct {
		name      string
		in        string
		want      Mode
		expectErr error
	}{
		{"create", "1\n", ModeCreate, nil},
		{"retry after invalid", "7\nreport\n", ModeReport, nil},
		{"closed input", "", "", ErrCancelled},
		{"only invalid input", "x\n", "", ErrCancelled},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			got, err := Ask(strings.NewReader(tc.in), out)
			if !errors.Is(err, tc.expectErr) {
				t.Fatalf("Expected error %v, got %v", tc.expectErr, err)
			}
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
			if !strings.Contains(out.String(), "1 - CREATE") {
				t.Errorf("Expected menu in output, got:\n%s", out)
			}
		})
	}
}

func TestWaitForEnterWithoutTerminal(t *testing.T) {
	for _, in := range []string{"", "\n"} {
		out := &bytes.Buffer{}
		if err := WaitForEnter(strings.NewReader(in), out, "Press ENTER to exit."); err != nil {
			t.Errorf("WaitForEnter(%q): %v", in, err)
		}
		if !strings.Contains(out.String(), "Press ENTER to exit.") {
			t.Errorf("Expected hint, got %q", out)
		}
	}
}
