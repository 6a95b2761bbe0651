package dialog

import (
	"fmt"
	"strings"
)

type State string

const (
	StateChoosing  State = "choosing"
	StateChosen    State = "chosen"
	StateCancelled State = "cancelled"
)

// Mode is what the run does after authenticating.
type Mode string

const (
	// ModeCreate is the Sunday run: cards, detail report, backlog, mail.
	ModeCreate Mode = "create"
	// ModeReport is the weekday run: D+1 mail from the existing backlog.
	ModeReport Mode = "report"
)

// ParseMode accepts the menu number or the mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", string(ModeCreate):
		return ModeCreate, nil
	case "2", string(ModeReport):
		return ModeReport, nil
	}
	return "", fmt.Errorf("unknown mode %q, use 1 (create) or 2 (report)", s)
}
