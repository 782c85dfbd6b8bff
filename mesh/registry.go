package mesh

import (
	"sort"
	"sync"
)

// Registry owns named buffers across frames, handing out the same
// Buffer identity for the same name on every call. It plays the role of
// the mesh-owning host: create on first use, reuse afterwards.
type Registry struct {
	mu      sync.Mutex
	buffers map[string]*Buffer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{buffers: make(map[string]*Buffer)}
}

// GetOrCreate returns the buffer with the given name, creating it empty
// if it does not exist yet.
func (r *Registry) GetOrCreate(name string) *Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if buf, ok := r.buffers[name]; ok {
		return buf
	}
	buf := NewBuffer(name)
	r.buffers[name] = buf
	return buf
}

// Get returns the buffer with the given name, if present.
func (r *Registry) Get(name string) (*Buffer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf, ok := r.buffers[name]
	return buf, ok
}

// Remove drops the buffer with the given name.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.buffers, name)
}

// Names returns the registered buffer names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.buffers))
	for name := range r.buffers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
