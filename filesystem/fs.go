package filesystem

import (
	"cmp"
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	"github.com/brettbedarf/vfsh"
	"github.com/brettbedarf/vfsh/internal/util"
)

// FileSystem owns the root of the node tree. It is not safe for concurrent
// mutation; callers serialize access (see shell.Shell).
type FileSystem struct {
	root *Node // Root of node tree; always a directory
}

// NewFS creates a FileSystem with an empty root directory
func NewFS() *FileSystem {
	return &FileSystem{root: NewDir()}
}

// NewFSWithRoot creates a FileSystem over an existing tree
func NewFSWithRoot(root *Node) (*FileSystem, error) {
	if root == nil || !root.IsDir() {
		return nil, vfsh.Errorf(vfsh.NotADirectory, "root must be a directory")
	}
	return &FileSystem{root: root}, nil
}

func (fs *FileSystem) Root() *Node {
	return fs.root
}

// List returns the entries of a directory with all directories before all
// files, each group ordered by case-insensitive name
func List(n *Node) ([]vfsh.Entry, error) {
	if !n.IsDir() {
		return nil, vfsh.NewError(vfsh.NotADirectory, "")
	}
	entries := make([]vfsh.Entry, 0, n.ChildCount())
	n.RangeChildren(func(name string, child *Node) bool {
		entries = append(entries, vfsh.Entry{Name: name, Type: child.Type()})
		return true
	})
	slices.SortFunc(entries, func(a, b vfsh.Entry) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		// map iteration order is random; keep equal folds deterministic
		return cmp.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// ReadContent renders a file's content. Binary content is validated and its
// size reported but never exposed.
func ReadContent(n *Node) (string, error) {
	if !n.IsFile() {
		return "", vfsh.NewError(vfsh.NotAFile, "")
	}
	switch n.Encoding() {
	case vfsh.TextEncoding:
		return n.Data(), nil
	case vfsh.BinaryEncoding:
		raw, err := base64.StdEncoding.DecodeString(n.Data())
		if err != nil {
			return "<binary invalid base64>", nil
		}
		return fmt.Sprintf("<binary %d bytes>", len(raw)), nil
	default:
		return fmt.Sprintf("<unknown encoding: %s>", n.Encoding()), nil
	}
}

// CreateFile inserts an empty text file at p, overwriting any existing entry
// of that name. The parent must already exist; intermediate directories are
// never created.
func (fs *FileSystem) CreateFile(p string, cwd []string) (*Node, error) {
	logger := util.GetLogger("FS.CreateFile")

	parentPath, name := splitLeaf(p)
	if name == "" || name == "." || name == ".." {
		return nil, vfsh.NewError(vfsh.InvalidName, p)
	}

	_, parent, err := fs.Resolve(parentPath, cwd, false)
	if err != nil {
		return nil, err
	}
	if !parent.IsDir() {
		return nil, &vfsh.Error{Kind: vfsh.NotADirectory, Msg: "Parent is not a directory", Path: parentPath}
	}

	node := NewTextFile("")
	parent.SetChild(name, node)
	logger.Debug().Str("path", p).Msg("Created file")
	return node, nil
}

// CreateDirectory creates the directory named by p. Missing intermediate
// directories are created only when parents is set. An existing entry with
// the final name, directory or file, is a conflict.
func (fs *FileSystem) CreateDirectory(p string, cwd []string, parents bool) (*Node, error) {
	logger := util.GetLogger("FS.CreateDirectory")

	var start []string
	if !strings.HasPrefix(p, "/") {
		start = cwd
	}
	segs := SplitPath(p)
	if len(segs) == 0 {
		return nil, &vfsh.Error{Kind: vfsh.InvalidName, Msg: "Cannot create root directory", Path: p}
	}

	stack, parent, err := fs.resolveSegments(start, segs[:len(segs)-1], parents)
	if err != nil {
		return nil, err
	}
	if !parent.IsDir() {
		return nil, &vfsh.Error{Kind: vfsh.NotADirectory, Msg: "Parent is not a directory", Path: JoinPath(stack)}
	}

	last := segs[len(segs)-1]
	if last == "." || last == ".." {
		return nil, &vfsh.Error{Kind: vfsh.AlreadyExists, Msg: "File exists", Path: p, Existing: vfsh.DirNodeType}
	}
	if existing, ok := parent.GetChild(last); ok {
		conflict := &vfsh.Error{Kind: vfsh.AlreadyExists, Msg: "File exists", Path: p, Existing: existing.Type()}
		if existing.IsFile() {
			conflict.Msg = "Not a directory"
		}
		return nil, conflict
	}

	node := NewDir()
	parent.SetChild(last, node)
	logger.Debug().Str("path", p).Bool("parents", parents).Msg("Created directory")
	return node, nil
}

// splitLeaf splits p into its parent path and final name.
// "a" -> (".", "a"), "/a" -> ("/", "a"), "a/b/" -> ("a/b", "")
func splitLeaf(p string) (parent, name string) {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ".", p
	}
	parent, name = p[:i], p[i+1:]
	if parent == "" {
		parent = "/"
	}
	return parent, name
}
