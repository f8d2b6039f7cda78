package adapters

import (
	"fmt"
	"strings"

	"github.com/brettbedarf/vfsh"
	"github.com/puzpuzpuz/xsync/v4"
)

// Registry maps a source's URL scheme to the provider that builds its
// adapters. Sources without a scheme are local files.
type Registry struct {
	providers *xsync.Map[string, vfsh.AdapterProvider]
}

func NewRegistry() *Registry {
	return &Registry{providers: xsync.NewMap[string, vfsh.AdapterProvider]()}
}

// Register ties a provider to a scheme and should be called for each
// adapter type during app init. The first registration for a scheme wins.
func (r *Registry) Register(scheme string, provider vfsh.AdapterProvider) {
	r.providers.LoadOrStore(strings.ToLower(scheme), provider)
}

// GetProvider returns the provider registered for scheme
func (r *Registry) GetProvider(scheme string) (vfsh.AdapterProvider, error) {
	provider, ok := r.providers.Load(strings.ToLower(scheme))
	if !ok {
		return nil, fmt.Errorf("no adapter provider for %q", scheme)
	}
	return provider, nil
}

// NewAdapter picks the provider from src's scheme and delegates to it.
// All expected schemes should be registered with [Registry.Register] first.
func (r *Registry) NewAdapter(src string) (vfsh.SeedAdapter, error) {
	provider, err := r.GetProvider(SchemeOf(src))
	if err != nil {
		return nil, err
	}
	return provider.NewAdapter(src)
}

var _ vfsh.AdapterProvider = (*Registry)(nil)

// SchemeOf returns the lower-cased URL scheme of src, or "file" when src
// carries none
func SchemeOf(src string) string {
	src = strings.TrimSpace(src)
	if i := strings.Index(src, "://"); i > 0 {
		return strings.ToLower(src[:i])
	}
	return FileAdapterType
}
