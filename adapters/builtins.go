package adapters

type BuiltInAdapterType = string

const (
	FileAdapterType  BuiltInAdapterType = "file"
	HTTPAdapterType  BuiltInAdapterType = "http"
	HTTPSAdapterType BuiltInAdapterType = "https"
)

// RegisterBuiltins registers all built-in adapters by default
// or only the specific ones if keys are provided.
// http and https share one provider and therefore one client.
func RegisterBuiltins(r *Registry, opts HTTPOptions, adapters ...BuiltInAdapterType) {
	if len(adapters) == 0 {
		// Include all built-in adapters here when adding implementations
		adapters = append(adapters, FileAdapterType, HTTPAdapterType, HTTPSAdapterType)
	}

	var httpProvider *HTTPProvider
	for _, key := range adapters {
		switch key {
		case FileAdapterType:
			r.Register(key, &FileProvider{})
		case HTTPAdapterType, HTTPSAdapterType:
			if httpProvider == nil {
				httpProvider = NewHTTPProvider(opts)
			}
			r.Register(key, httpProvider)
		}
	}
}

// NewDefaultRegistry returns a Registry with every built-in adapter registered
func NewDefaultRegistry(opts HTTPOptions) *Registry {
	r := NewRegistry()
	RegisterBuiltins(r, opts)
	return r
}
