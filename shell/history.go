package shell

import (
	"fmt"
	"strings"
)

// History is the append-only log of accepted command lines
type History struct {
	lines []string
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Append(line string) {
	h.lines = append(h.lines, line)
}

// Lines returns a copy of the log
func (h *History) Lines() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Render numbers every entry from 1, one per line
func (h *History) Render() string {
	var b strings.Builder
	for i, line := range h.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d  %s", i+1, line)
	}
	b.WriteByte('\n')
	return b.String()
}

type historyCommand struct{}

func (historyCommand) Name() string { return "history" }

func (historyCommand) Run(s *Shell, args []string) (string, error) {
	if len(args) > 1 {
		return "", invalidArgument("too many arguments")
	}
	return s.history.Render(), nil
}
