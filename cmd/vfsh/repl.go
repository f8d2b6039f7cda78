package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brettbedarf/vfsh/internal/util"
	"github.com/brettbedarf/vfsh/shell"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	cwdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

// renderPrompt builds "<prefix>:<cwd>$ "
func renderPrompt(prefix, cwd string) string {
	return promptStyle.Render(prefix) + ":" + cwdStyle.Render(cwd) + "$ "
}

// replayScript runs the script at path, echoing each line as "$ <line>"
// before its output. It reports whether the script hit exit. A script that
// cannot be opened or read is logged and the session goes on.
func replayScript(sh *shell.Shell, path string, out io.Writer) bool {
	logger := util.GetLogger("Script")

	f, err := os.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str("script", path).Msg("Skipping startup script")
		return false
	}
	defer f.Close()

	res, err := sh.RunScript(f, func(line, output string) {
		fmt.Fprintln(out, echoStyle.Render("$ "+line))
		fmt.Fprint(out, output)
	})
	if err != nil {
		logger.Warn().Err(err).Str("script", path).Int("executed", res.Executed).Msg("Startup script stopped early")
		return res.Exited
	}
	logger.Debug().Str("script", path).Int("executed", res.Executed).Bool("exited", res.Exited).Msg("Script replayed")
	return res.Exited
}

// repl reads lines from in until exit or EOF
func repl(sh *shell.Shell, in io.Reader, out io.Writer, prefix string) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, renderPrompt(prefix, sh.Cwd()))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		output, terminate := sh.Execute(strings.TrimSpace(scanner.Text()), false)
		fmt.Fprint(out, output)
		if terminate {
			return nil
		}
	}
}
