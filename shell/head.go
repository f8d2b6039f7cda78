package shell

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/brettbedarf/vfsh/filesystem"
)

// headCommand prints the first lines of a file: head [-nN | -n N] <path>
type headCommand struct{}

func (headCommand) Name() string { return "head" }

func (headCommand) Run(s *Shell, args []string) (string, error) {
	ops := args[1:]
	if len(ops) == 0 {
		return "", invalidArgument("missing file operand")
	}

	if len(ops) == 1 && strings.HasPrefix(ops[0], "-n") {
		return "", invalidArgument("missing file operand")
	}

	count := s.headLines
	rest := ops
	if len(ops) > 1 {
		var countArg string
		switch {
		case ops[0] == "-n":
			countArg, rest = ops[1], ops[2:]
		case strings.HasPrefix(ops[0], "-n"):
			countArg, rest = ops[0][2:], ops[1:]
		default:
			return "", invalidArgument("invalid option -- '%s'", ops[0])
		}

		n, err := strconv.Atoi(countArg)
		if err != nil || n < 0 {
			return "", invalidArgument("invalid number of lines: '%s'", countArg)
		}
		count = n
	}
	switch len(rest) {
	case 0:
		return "", invalidArgument("missing file operand")
	case 1:
	default:
		return "", invalidArgument("extra operand '%s'", rest[1])
	}

	_, node, err := s.fs.Resolve(rest[0], s.cwd, false)
	if err != nil {
		return "", err
	}
	content, err := filesystem.ReadContent(node)
	if err != nil {
		return "", err
	}

	lines := splitLines(content)
	if len(lines) > count {
		lines = lines[:count]
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// splitLines breaks on the Unicode line boundaries: \n, \r,
// \r\n, \v, \f, \x1c-\x1e, U+0085, U+2028 and U+2029. A trailing break
// does not produce an empty last line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if i < start || !isLineBreak(r) {
			continue
		}
		lines = append(lines, s[start:i])
		start = i + utf8.RuneLen(r)
		if r == '\r' && start < len(s) && s[start] == '\n' {
			start++
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
