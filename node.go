package vfsh

// NodeType valid types are DirNodeType "dir", FileNodeType "file"
type NodeType string

const (
	DirNodeType  NodeType = "dir"
	FileNodeType NodeType = "file"
)

// Encoding tags how a file's content is stored.
// Values other than the ones below may arrive from a tagged seed and are kept
// as-is so they can be reported back to the user.
type Encoding string

const (
	// TextEncoding content is used verbatim
	TextEncoding Encoding = "utf8"
	// BinaryEncoding content is a base64 encoded byte blob
	BinaryEncoding Encoding = "base64"
)

// Entry is a single directory listing row
type Entry struct {
	Name string
	Type NodeType
}

// IsDir reports whether the entry names a directory
func (e Entry) IsDir() bool {
	return e.Type == DirNodeType
}
