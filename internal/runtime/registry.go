package runtime

import (
	"sync"

	"github.com/mkalinski/go-avm2/pkg/qname"
)

// Registry publishes class descriptors to the runtime. It is append-only:
// descriptors are registered once by the class loader and are immutable
// afterwards, so a single read-write lock serves as the publication fence
// (release on the writer, acquire on readers).
type Registry struct {
	mu      sync.RWMutex
	classes map[qname.QName]*ClassInfo
}

// NewRegistry creates an empty class registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[qname.QName]*ClassInfo)}
}

// globalRegistry holds the process-wide registry used by lazy object
// initialization and the builtin bootstrap.
var globalRegistry = NewRegistry()

// GlobalRegistry returns the process-wide class registry.
func GlobalRegistry() *Registry {
	return globalRegistry
}

// Register publishes a class descriptor. Re-registering a name is a loader
// bug; the first registration wins so already-published instances keep a
// consistent descriptor.
func (r *Registry) Register(c *ClassInfo) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.classes[c.Name]; exists {
		return
	}
	r.classes[c.Name] = c
}

// Lookup resolves a class by qualified name.
func (r *Registry) Lookup(name qname.QName) (*ClassInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	return c, ok
}

// LookupLocal resolves a class by public local name.
func (r *Registry) LookupLocal(local string) (*ClassInfo, bool) {
	return r.Lookup(qname.PublicName(local))
}

// Len returns the number of published classes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classes)
}
