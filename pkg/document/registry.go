package document

import (
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Registry maps source document ids to loaded handles. A pageset slot's
// SourceID is only meaningful against the registry it was loaded into;
// Realize resolves slots through it and fails on anything discarded.
type Registry struct {
	mu      sync.Mutex
	handles map[string]*Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]*Handle)}
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	password string
}

// WithPassword supplies the user password for an encrypted input
// document.
func WithPassword(password string) LoadOption {
	return func(o *loadOptions) {
		o.password = password
	}
}

// Load parses data, validates it, and registers the resulting handle.
// Fails with ErrMalformedDocument if pdfcpu cannot parse or validate
// the bytes; no handle is registered in that case.
func (r *Registry) Load(data []byte, opts ...LoadOption) (*Handle, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	conf := model.NewDefaultConfiguration()
	if o.password != "" {
		conf.UserPW = o.password
		conf.OwnerPW = o.password
	}
	h, err := load(data, conf)
	if err != nil {
		return nil, err
	}
	r.Register(h)
	return h, nil
}

// LoadFile reads path and loads its contents.
func (r *Registry) LoadFile(path string, opts ...LoadOption) (*Handle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.Load(data, opts...)
}

// Register adds a handle obtained elsewhere, e.g. from Realize or
// NewBlank, so page sets can reference it.
func (r *Registry) Register(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[h.id] = h
}

// Resolve returns the handle for id, if still loaded.
func (r *Registry) Resolve(id string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[id]
	return h, ok
}

// Discard unloads the handle for id. Slots still referencing it become
// dangling and will fail the next realize.
func (r *Registry) Discard(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, id)
}

// IDs returns the ids of all loaded handles.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.handles))
	for id := range r.handles {
		ids = append(ids, id)
	}
	return ids
}
