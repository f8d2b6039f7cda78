package shell

import (
	"errors"
	"fmt"

	"github.com/brettbedarf/vfsh"
)

// mkdirCommand creates directories: mkdir [-p] <path>...
// -p is only recognized as the first operand. Processing stops at the
// first failure; earlier operands stay created.
type mkdirCommand struct{}

func (mkdirCommand) Name() string { return "mkdir" }

func (mkdirCommand) Run(s *Shell, args []string) (string, error) {
	ops := args[1:]
	parents := false
	if len(ops) > 0 && ops[0] == "-p" {
		parents = true
		ops = ops[1:]
	}
	if len(ops) == 0 {
		return "", invalidArgument("missing operand")
	}

	for _, p := range ops {
		if _, err := s.fs.CreateDirectory(p, s.cwd, parents); err != nil {
			if errors.Is(err, vfsh.ErrAlreadyExists) {
				return "", &vfsh.Error{
					Kind: vfsh.AlreadyExists,
					Msg:  fmt.Sprintf("cannot create directory '%s': File exists", p),
					Path: p,
					Err:  err,
				}
			}
			return "", err
		}
	}
	return "", nil
}
