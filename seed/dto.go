package seed

import "github.com/brettbedarf/vfsh"

// NodeDTO is the JSON/YAML representation of an explicitly tagged node
//
//	{"type": "dir", "children": {"name": {...}}}
//	{"type": "file", "encoding": "utf8"|"base64", "data": "..."}
type NodeDTO struct {
	Type     vfsh.NodeType       `json:"type" yaml:"type"`
	Children map[string]*NodeDTO `json:"children,omitempty" yaml:"children,omitempty"`
	Encoding *vfsh.Encoding      `json:"encoding,omitempty" yaml:"encoding,omitempty"` // Default utf8
	Data     *string             `json:"data,omitempty" yaml:"data,omitempty"`         // Default ""
}

// typeKey marks a mapping as an already tagged node
const typeKey = "type"

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
