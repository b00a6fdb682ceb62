package kind

import (
	"fmt"
	"sync"
)

// Registry holds tag kinds by name
type Registry struct {
	mux   sync.RWMutex
	kinds map[string]*Kind
	names []string
}

// NewRegistry creates registry with supplied kinds, it panics on invalid kind
func NewRegistry(kinds ...*Kind) *Registry {
	ret := &Registry{kinds: map[string]*Kind{}}
	if err := ret.Register(kinds...); err != nil {
		panic(err)
	}
	return ret
}

// Register adds or replaces kinds
func (r *Registry) Register(kinds ...*Kind) error {
	for _, aKind := range kinds {
		if aKind == nil {
			continue
		}
		if err := aKind.Validate(); err != nil {
			return err
		}
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	for _, aKind := range kinds {
		if aKind == nil {
			continue
		}
		if _, ok := r.kinds[aKind.Name]; !ok {
			r.names = append(r.names, aKind.Name)
		}
		r.kinds[aKind.Name] = aKind
	}
	return nil
}

// Lookup returns kind by name
func (r *Registry) Lookup(name string) (*Kind, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret, ok := r.kinds[name]
	return ret, ok
}

// Has returns true if kind is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Ensure returns registered kind or a plain non repeatable kind for unknown name
func (r *Registry) Ensure(name string) *Kind {
	if ret, ok := r.Lookup(name); ok {
		return ret
	}
	return &Kind{Name: name}
}

// Names returns kind names in registration order
func (r *Registry) Names() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return append([]string{}, r.names...)
}

// Merge registers kinds that are not yet defined, defined kinds have to match on repeatability
func (r *Registry) Merge(kinds ...*Kind) error {
	for _, aKind := range kinds {
		if aKind == nil {
			continue
		}
		if existing, ok := r.Lookup(aKind.Name); ok {
			if existing.Repeatable != aKind.Repeatable || existing.Stereotype != aKind.Stereotype {
				return fmt.Errorf("conflicting definition of tag kind %v", aKind.Name)
			}
			continue
		}
		if err := r.Register(aKind); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a registry copy
func (r *Registry) Clone() *Registry {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := &Registry{kinds: make(map[string]*Kind, len(r.kinds)), names: append([]string{}, r.names...)}
	for k, v := range r.kinds {
		ret.kinds[k] = v
	}
	return ret
}
