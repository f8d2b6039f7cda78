package adapters

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/brettbedarf/vfsh"
)

// FileProvider builds adapters for seeds on the local disk. It accepts bare
// paths and file:// URLs.
type FileProvider struct{}

func (p *FileProvider) NewAdapter(src string) (vfsh.SeedAdapter, error) {
	path := strings.TrimSpace(src)
	if SchemeOf(path) == FileAdapterType && strings.Contains(path, "://") {
		u, err := url.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("invalid file URL %q: %w", src, err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return nil, fmt.Errorf("file URL must not name a remote host: %q", src)
		}
		path = u.Path
	}
	if path == "" {
		return nil, fmt.Errorf("empty seed path")
	}
	return &FileAdapter{path: path}, nil
}

// FileAdapter implements [vfsh.SeedAdapter] for a local file
type FileAdapter struct {
	path string
}

func (a *FileAdapter) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(a.path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("seed %s is a directory", a.path)
	}
	return f, nil
}

func (a *FileAdapter) Source() string {
	return a.path
}
