package shell

import "github.com/brettbedarf/vfsh"

type cdCommand struct{}

func (cdCommand) Name() string { return "cd" }

// Run moves the working directory; with no operand it goes to the root.
// The working directory only changes when the target is a directory.
func (cdCommand) Run(s *Shell, args []string) (string, error) {
	p := "/"
	if len(args) > 1 {
		p = args[1]
	}

	stack, node, err := s.fs.Resolve(p, s.cwd, false)
	if err != nil {
		return "", err
	}
	if !node.IsDir() {
		return "", vfsh.NewError(vfsh.NotADirectory, p)
	}
	s.cwd = stack
	return "", nil
}
