package shell

import (
	"strings"

	"github.com/brettbedarf/vfsh/filesystem"
)

// lsCommand lists one directory, directories first, each suffixed with "/"
type lsCommand struct{}

func (lsCommand) Name() string { return "ls" }

func (lsCommand) Run(s *Shell, args []string) (string, error) {
	p := "."
	if len(args) > 1 {
		p = args[1]
	}

	_, node, err := s.fs.Resolve(p, s.cwd, false)
	if err != nil {
		return "", err
	}
	entries, err := filesystem.List(node)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Name)
		if e.IsDir() {
			b.WriteByte('/')
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
