package shell

import (
	"errors"

	"github.com/brettbedarf/vfsh"
)

// touchCommand clears existing files and creates missing ones. Every operand
// is attempted; failures are reported together.
type touchCommand struct{}

func (touchCommand) Name() string { return "touch" }

func (touchCommand) Run(s *Shell, args []string) (string, error) {
	if len(args) < 2 {
		return "", invalidArgument("missing file operand")
	}

	var errs []error
	for _, p := range args[1:] {
		_, node, err := s.fs.Resolve(p, s.cwd, false)
		switch {
		case err == nil && node.IsFile():
			node.Truncate()
		case err == nil:
			errs = append(errs, &vfsh.Error{Kind: vfsh.NotAFile, Msg: p + ": Is a directory", Path: p})
		default:
			if _, err := s.fs.CreateFile(p, s.cwd); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return "", errors.Join(errs...)
}
