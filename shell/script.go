package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxScriptLine bounds a single script line
const maxScriptLine = 1 << 20

// ScriptResult summarizes a script replay
type ScriptResult struct {
	Executed int  // Lines handed to Execute
	Exited   bool // Replay stopped at an exit
}

// RunScript feeds r to Execute one line at a time. Blank lines and lines
// starting with "#" are skipped and never reach history. Replay stops after
// a line that terminates the session. echo, when non-nil, receives every
// executed line with its output.
func (s *Shell) RunScript(r io.Reader, echo func(line, output string)) (ScriptResult, error) {
	var res ScriptResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxScriptLine)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		output, terminate := s.Execute(line, true)
		res.Executed++
		if echo != nil {
			echo(line, output)
		}
		if terminate {
			res.Exited = true
			s.logger.Debug().Int("executed", res.Executed).Msg("Script exited")
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("failed to read script: %w", err)
	}
	return res, nil
}
