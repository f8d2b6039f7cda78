package filesystem

import (
	"slices"
	"strings"

	"github.com/brettbedarf/vfsh"
)

// SplitPath splits p on "/" dropping empty segments from leading, trailing
// or repeated separators
func SplitPath(p string) []string {
	parts := strings.Split(p, "/")
	segs := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segs = append(segs, part)
		}
	}
	return segs
}

// JoinPath renders a name stack as an absolute path. The root is "/".
func JoinPath(stack []string) string {
	return "/" + strings.Join(stack, "/")
}

// Resolve walks p starting at the root when p is absolute, otherwise at cwd,
// and returns the resolved stack from root together with the node it names.
// cwd is never modified.
//
// When createDirs is set every missing segment is materialized as an empty
// directory, including the last one.
func (fs *FileSystem) Resolve(p string, cwd []string, createDirs bool) ([]string, *Node, error) {
	var start []string
	if !strings.HasPrefix(p, "/") {
		start = cwd
	}
	return fs.resolveSegments(start, SplitPath(p), createDirs)
}

func (fs *FileSystem) resolveSegments(start []string, segs []string, createDirs bool) ([]string, *Node, error) {
	stack := slices.Clone(start)
	if stack == nil {
		stack = []string{}
	}
	node, err := fs.NodeAt(stack)
	if err != nil {
		return nil, nil, err
	}

	for _, seg := range segs {
		switch seg {
		case ".":
			continue
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if node, err = fs.NodeAt(stack); err != nil {
				return nil, nil, err
			}
			continue
		}

		if !node.IsDir() {
			return nil, nil, vfsh.NewError(vfsh.NotADirectory, JoinPath(stack))
		}
		child, ok := node.GetChild(seg)
		if !ok {
			if !createDirs {
				return nil, nil, vfsh.NewError(vfsh.NotFound, JoinPath(append(stack, seg)))
			}
			child = NewDir()
			node.SetChild(seg, child)
		}
		stack = append(stack, seg)
		node = child
	}
	return stack, node, nil
}

// NodeAt re-resolves a stack from the root. Every name but the last must be a
// directory.
func (fs *FileSystem) NodeAt(stack []string) (*Node, error) {
	node := fs.root
	for i, name := range stack {
		child, ok := node.GetChild(name)
		if !ok {
			if node.IsDir() {
				return nil, vfsh.NewError(vfsh.NotFound, JoinPath(stack[:i+1]))
			}
			return nil, vfsh.NewError(vfsh.NotADirectory, JoinPath(stack[:i]))
		}
		node = child
	}
	return node, nil
}
