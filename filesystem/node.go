package filesystem

import (
	"encoding/base64"

	"github.com/brettbedarf/vfsh"
	"github.com/puzpuzpuz/xsync/v4"
)

// Node is either a directory or a file. Directories own their children
// outright and nodes never point back at their parent, so the working
// directory has to be tracked as a name stack outside the tree.
type Node struct {
	kind     vfsh.NodeType
	children *xsync.Map[string, *Node] // nil for files
	encoding vfsh.Encoding
	data     string
}

// NewDir returns an empty directory node
func NewDir() *Node {
	return &Node{
		kind:     vfsh.DirNodeType,
		children: xsync.NewMap[string, *Node](),
	}
}

// NewFile returns a file node with content stored under enc
func NewFile(enc vfsh.Encoding, data string) *Node {
	return &Node{kind: vfsh.FileNodeType, encoding: enc, data: data}
}

// NewTextFile returns a file whose content is used verbatim
func NewTextFile(content string) *Node {
	return NewFile(vfsh.TextEncoding, content)
}

// NewBinaryFile stores raw as base64 so it is never displayed directly
func NewBinaryFile(raw []byte) *Node {
	return NewFile(vfsh.BinaryEncoding, base64.StdEncoding.EncodeToString(raw))
}

func (n *Node) Type() vfsh.NodeType {
	return n.kind
}

func (n *Node) IsDir() bool {
	return n.kind == vfsh.DirNodeType
}

func (n *Node) IsFile() bool {
	return n.kind == vfsh.FileNodeType
}

// Encoding returns the file's encoding tag; empty for directories
func (n *Node) Encoding() vfsh.Encoding {
	return n.encoding
}

// Data returns the stored (possibly base64) file content
func (n *Node) Data() string {
	return n.data
}

// Truncate resets a file's content to empty while keeping its encoding.
// No-op on directories.
func (n *Node) Truncate() {
	if n.IsFile() {
		n.data = ""
	}
}

// GetChild returns a child node by name
func (n *Node) GetChild(name string) (child *Node, ok bool) {
	if n.children == nil {
		return nil, false
	}
	return n.children.Load(name)
}

// SetChild stores child under name, replacing any existing entry.
// Returns false if n is not a directory.
func (n *Node) SetChild(name string, child *Node) bool {
	if n.children == nil {
		return false
	}
	n.children.Store(name, child)
	return true
}

// ChildCount returns the number of direct children
func (n *Node) ChildCount() int {
	if n.children == nil {
		return 0
	}
	return n.children.Size()
}

// RangeChildren calls fn for every direct child until fn returns false
func (n *Node) RangeChildren(fn func(name string, child *Node) bool) {
	if n.children == nil {
		return
	}
	n.children.Range(fn)
}
