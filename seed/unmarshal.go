package seed

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brettbedarf/vfsh"
	"github.com/brettbedarf/vfsh/filesystem"
	"gopkg.in/yaml.v3"
)

// Normalize converts an already parsed seed into a canonical node tree.
// Values may be nested map[string]any (directory), string (text file) or
// []byte (binary file). A tree carrying a top level "type" key is treated
// as tagged and decoded as [NodeDTO] instead.
func Normalize(tree map[string]any) (*filesystem.Node, error) {
	if _, ok := tree[typeKey]; ok {
		// re-decode through the typed form
		raw, err := json.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tagged seed: %w", err)
		}
		var dto NodeDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tagged seed: %w", err)
		}
		return rootFromDTO(&dto)
	}
	return normalizeDir("", tree)
}

// ParseJSON builds a tree from a JSON seed in either tagged or implicit form
func ParseJSON(data []byte) (*filesystem.Node, error) {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
	}
	if tree == nil {
		return nil, vfsh.Errorf(vfsh.UnsupportedValue, "seed must be a mapping")
	}
	if _, ok := tree[typeKey]; ok {
		var dto NodeDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tagged seed: %w", err)
		}
		return rootFromDTO(&dto)
	}
	return normalizeDir("", tree)
}

// ParseYAML builds a tree from a YAML seed. In the implicit form scalars
// tagged !!binary become binary files.
func ParseYAML(data []byte) (*filesystem.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, vfsh.Errorf(vfsh.UnsupportedValue, "seed must be a mapping")
	}
	root := deref(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, vfsh.Errorf(vfsh.UnsupportedValue, "seed must be a mapping")
	}

	if hasKey(root, typeKey) {
		var dto NodeDTO
		if err := root.Decode(&dto); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tagged seed: %w", err)
		}
		return rootFromDTO(&dto)
	}

	tree, err := yamlValue(root)
	if err != nil {
		return nil, err
	}
	return normalizeDir("", tree.(map[string]any))
}

func normalizeDir(prefix string, tree map[string]any) (*filesystem.Node, error) {
	dir := filesystem.NewDir()
	for name, val := range tree {
		p := prefix + "/" + name
		if err := validName(name, p); err != nil {
			return nil, err
		}

		var node *filesystem.Node
		switch v := val.(type) {
		case map[string]any:
			child, err := normalizeDir(p, v)
			if err != nil {
				return nil, err
			}
			node = child
		case string:
			node = filesystem.NewTextFile(v)
		case []byte:
			node = filesystem.NewBinaryFile(v)
		default:
			return nil, unsupported(name, p)
		}
		dir.SetChild(name, node)
	}
	return dir, nil
}

func rootFromDTO(dto *NodeDTO) (*filesystem.Node, error) {
	if dto.Type != vfsh.DirNodeType {
		return nil, &vfsh.Error{Kind: vfsh.UnsupportedValue, Msg: "root must be a directory", Path: "/"}
	}
	return fromDTO("", "/", dto)
}

func fromDTO(name, p string, dto *NodeDTO) (*filesystem.Node, error) {
	if dto == nil {
		return nil, unsupported(name, p)
	}
	switch dto.Type {
	case vfsh.DirNodeType:
		dir := filesystem.NewDir()
		for childName, child := range dto.Children {
			cp := strings.TrimSuffix(p, "/") + "/" + childName
			if err := validName(childName, cp); err != nil {
				return nil, err
			}
			node, err := fromDTO(childName, cp, child)
			if err != nil {
				return nil, err
			}
			dir.SetChild(childName, node)
		}
		return dir, nil
	case vfsh.FileNodeType:
		enc := valueOrDefault(dto.Encoding, vfsh.TextEncoding)
		return filesystem.NewFile(enc, valueOrDefault(dto.Data, "")), nil
	default:
		return nil, unsupported(name, p)
	}
}

func yamlValue(n *yaml.Node) (any, error) {
	n = deref(n)
	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!binary":
			raw, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
			if err != nil {
				return nil, fmt.Errorf("invalid !!binary value at line %d: %w", n.Line, err)
			}
			return raw, nil
		case "!!str":
			return n.Value, nil
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode value at line %d: %w", n.Line, err)
	}
	return v, nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

func validName(name, p string) error {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return &vfsh.Error{Kind: vfsh.InvalidName, Msg: fmt.Sprintf("Invalid VFS entry name '%s'", name), Path: p}
	}
	return nil
}

func unsupported(name, p string) error {
	return &vfsh.Error{Kind: vfsh.UnsupportedValue, Msg: fmt.Sprintf("Unsupported VFS value for '%s'", name), Path: p}
}
