package shell

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	calWidth  = 20 // 7 columns of 2 plus 6 separators
	weekdayHd = "Mo Tu We Th Fr Sa Su"
	minYear   = 1
	maxYear   = 9999
)

// calCommand prints a Monday-first month calendar: cal [month [year]]
type calCommand struct{}

func (calCommand) Name() string { return "cal" }

func (calCommand) Run(s *Shell, args []string) (string, error) {
	ops := args[1:]
	if len(ops) > 2 {
		return "", invalidArgument("too many arguments")
	}

	now := s.now()
	year, month := now.Year(), int(now.Month())
	if len(ops) >= 1 {
		m, err := strconv.Atoi(ops[0])
		if err != nil {
			return "", invalidArgument("invalid argument - not a number: '%s'", ops[0])
		}
		month = m
	}
	if len(ops) == 2 {
		y, err := strconv.Atoi(ops[1])
		if err != nil {
			return "", invalidArgument("invalid argument - not a number: '%s'", ops[1])
		}
		year = y
	}
	if month < 1 || month > 12 {
		return "", invalidArgument("invalid argument - month must be 1-12")
	}
	if year < minYear || year > maxYear {
		return "", invalidArgument("invalid argument - year must be %d-%d", minYear, maxYear)
	}

	return FormatMonth(year, time.Month(month)) + "\n", nil
}

// FormatMonth renders one month: a centered "Month Year" title, the weekday
// header and one line per week with right-aligned day numbers. Trailing
// spaces are trimmed from every line and each line ends with a newline.
func FormatMonth(year int, month time.Month) string {
	var b strings.Builder
	writeLine(&b, center(fmt.Sprintf("%s %d", month, year), calWidth))
	writeLine(&b, weekdayHd)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	offset := (int(first.Weekday()) + 6) % 7 // Monday is column 0

	cells := make([]string, 0, 7)
	for range offset {
		cells = append(cells, "  ")
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, fmt.Sprintf("%2d", d))
		if len(cells) == 7 {
			writeLine(&b, strings.Join(cells, " "))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		writeLine(&b, strings.Join(cells, " "))
	}
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(strings.TrimRight(line, " "))
	b.WriteByte('\n')
}

// center pads s to width, putting the odd space on the left only when
// both the margin and width are odd
func center(s string, width int) string {
	marg := width - len(s)
	if marg <= 0 {
		return s
	}
	left := marg/2 + (marg & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", marg-left)
}
