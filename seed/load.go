// Package seed builds the in-memory tree from a declarative JSON or YAML
// document fetched through a [vfsh.SeedAdapter].
package seed

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/brettbedarf/vfsh"
	"github.com/brettbedarf/vfsh/filesystem"
	"github.com/brettbedarf/vfsh/internal/util"
)

// Format of a seed document
type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func (f Format) String() string {
	if f == YAMLFormat {
		return "yaml"
	}
	return "json"
}

// DetectFormat picks the format from the extension of a path or URL path.
// Anything not ending in .yaml/.yml is JSON.
func DetectFormat(src string) Format {
	p := src
	if u, err := url.Parse(src); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return YAMLFormat
	default:
		return JSONFormat
	}
}

// Parse builds a tree from raw seed bytes
func Parse(data []byte, format Format) (*filesystem.Node, error) {
	if format == YAMLFormat {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// Load reads the whole seed through adapter and returns a FileSystem over it.
// The adapter's reader is closed on every path.
func Load(ctx context.Context, adapter vfsh.SeedAdapter) (*filesystem.FileSystem, error) {
	logger := util.GetLogger("Seed")
	src := adapter.Source()

	rc, err := adapter.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed %s: %w", src, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed %s: %w", src, err)
	}

	format := DetectFormat(src)
	root, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	fs, err := filesystem.NewFSWithRoot(root)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("source", src).
		Stringer("format", format).
		Int("bytes", len(data)).
		Int("nodes", countNodes(root)).
		Msg("Seed loaded")
	return fs, nil
}

// LoadSource resolves src to an adapter through provider and loads it
func LoadSource(ctx context.Context, provider vfsh.AdapterProvider, src string) (*filesystem.FileSystem, error) {
	adapter, err := provider.NewAdapter(src)
	if err != nil {
		return nil, err
	}
	return Load(ctx, adapter)
}

// countNodes counts n and every node below it
func countNodes(n *filesystem.Node) int {
	count := 1
	n.RangeChildren(func(_ string, child *filesystem.Node) bool {
		count += countNodes(child)
		return true
	})
	return count
}
