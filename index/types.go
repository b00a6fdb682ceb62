package index

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/viant/xreflect"
)

// Types represents registry of loaded types available for live introspection
type Types struct {
	mux      sync.RWMutex
	registry *xreflect.Types
	names    []string
	known    map[string]bool
}

// NewTypes creates live types registry
func NewTypes(rTypes ...reflect.Type) *Types {
	ret := &Types{registry: xreflect.NewTypes(), known: map[string]bool{}}
	if err := ret.Register(rTypes...); err != nil {
		panic(err)
	}
	return ret
}

// Register registers named types, pointers are dereferenced
func (t *Types) Register(rTypes ...reflect.Type) error {
	t.mux.Lock()
	defer t.mux.Unlock()
	for _, rType := range rTypes {
		rType = Deref(rType)
		if rType == nil || rType.Name() == "" {
			return fmt.Errorf("unable to register unnamed type %v", rType)
		}
		name := TypeName(rType)
		if t.known[name] {
			continue
		}
		if err := t.registry.Register(rType.Name(), xreflect.WithPackage(rType.PkgPath()), xreflect.WithReflectType(rType)); err != nil {
			return fmt.Errorf("failed to register %v: %w", name, err)
		}
		t.known[name] = true
		t.names = append(t.names, name)
	}
	return nil
}

// Lookup returns loaded type by identity
func (t *Types) Lookup(name string) (reflect.Type, bool) {
	t.mux.RLock()
	known := t.known[name]
	t.mux.RUnlock()
	if !known {
		return nil, false
	}
	pkg, typeName := SplitTypeName(name)
	var options []xreflect.Option
	if pkg != "" {
		options = append(options, xreflect.WithPackage(pkg))
	}
	rType, err := t.registry.Lookup(typeName, options...)
	if err != nil || rType == nil {
		return nil, false
	}
	return rType, true
}

// Names returns type identities in registration order
func (t *Types) Names() []string {
	t.mux.RLock()
	defer t.mux.RUnlock()
	return append([]string{}, t.names...)
}

// SplitTypeName splits identity into package path and type name
func SplitTypeName(name string) (string, string) {
	index := strings.LastIndex(name, ".")
	if index == -1 || strings.LastIndex(name, "/") > index {
		return "", name
	}
	return name[:index], name[index+1:]
}

// Deref returns non pointer type
func Deref(rType reflect.Type) reflect.Type {
	for rType != nil && rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType
}
