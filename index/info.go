package index

import (
	"sync"
)

// Info represents indexed element with its tag instances
type Info interface {
	Element() Element
	//Instances returns raw tag instances in insertion order
	Instances() []*Instance
	//Instance returns first raw instance of the kind, for resolvers only
	Instance(kind string) *Instance
}

type tagged struct {
	sealed    bool
	instances []*Instance
	keys      map[string]bool
}

// Add appends instance unless identical one is present or the element is sealed
func (t *tagged) Add(instance *Instance) bool {
	if t.sealed || instance == nil {
		return false
	}
	if t.keys == nil {
		t.keys = map[string]bool{}
	}
	key := instance.Key()
	if t.keys[key] {
		return false
	}
	t.keys[key] = true
	t.instances = append(t.instances, instance)
	return true
}

func (t *tagged) Instances() []*Instance {
	return t.instances
}

func (t *tagged) Instance(kind string) *Instance {
	for _, candidate := range t.instances {
		if candidate.Kind == kind {
			return candidate
		}
	}
	return nil
}

type (
	// TypeInfo represents indexed type
	TypeInfo struct {
		tagged
		Name string
		// Stub is set for snapshot entries without tag data
		Stub bool
		// MixinFor holds target type name when the type is a mixin carrier
		MixinFor string
		fields   []*FieldInfo
		byField  map[string]*FieldInfo
		methods  []*MethodInfo
		bySig    map[string]*MethodInfo
		once     sync.Once
		elements []Info
	}

	// FieldInfo represents indexed field
	FieldInfo struct {
		tagged
		Owner string
		Name  string
	}

	// MethodInfo represents indexed method
	MethodInfo struct {
		tagged
		Owner  string
		Name   string
		Params []string
		// AnySignature is set for overlays declared by name only, they match a method of any signature
		AnySignature bool
	}
)

// NewTypeInfo creates type info
func NewTypeInfo(name string) *TypeInfo {
	return &TypeInfo{Name: name, byField: map[string]*FieldInfo{}, bySig: map[string]*MethodInfo{}}
}

func (t *TypeInfo) Element() Element {
	return Element{Kind: TypeElement, Type: t.Name}
}

// Field returns field info by name
func (t *TypeInfo) Field(name string) (*FieldInfo, bool) {
	ret, ok := t.byField[name]
	return ret, ok
}

// Method returns method info matching name and parameter type names
func (t *TypeInfo) Method(name string, params ...string) (*MethodInfo, bool) {
	ret, ok := t.bySig[Signature(name, params)]
	return ret, ok
}

// MethodsNamed returns methods with supplied name
func (t *TypeInfo) MethodsNamed(name string) []*MethodInfo {
	var result []*MethodInfo
	for _, candidate := range t.methods {
		if candidate.Name == name {
			result = append(result, candidate)
		}
	}
	return result
}

func (t *TypeInfo) Fields() []*FieldInfo {
	return t.fields
}

func (t *TypeInfo) Methods() []*MethodInfo {
	return t.methods
}

// EnsureField returns existing or adds new field info
func (t *TypeInfo) EnsureField(name string) *FieldInfo {
	if ret, ok := t.byField[name]; ok {
		return ret
	}
	ret := &FieldInfo{Owner: t.Name, Name: name}
	if t.sealed {
		ret.sealed = true
		return ret
	}
	t.byField[name] = ret
	t.fields = append(t.fields, ret)
	return ret
}

// EnsureMethod returns existing or adds new method info
func (t *TypeInfo) EnsureMethod(name string, params ...string) *MethodInfo {
	signature := Signature(name, params)
	if ret, ok := t.bySig[signature]; ok {
		return ret
	}
	ret := &MethodInfo{Owner: t.Name, Name: name, Params: params}
	if t.sealed {
		ret.sealed = true
		return ret
	}
	t.bySig[signature] = ret
	t.methods = append(t.methods, ret)
	return ret
}

// Elements returns type, fields and methods infos
func (t *TypeInfo) Elements() []Info {
	if t.sealed {
		t.once.Do(func() { t.elements = t.collect() })
		return t.elements
	}
	return t.collect()
}

func (t *TypeInfo) collect() []Info {
	var result = make([]Info, 0, 1+len(t.fields)+len(t.methods))
	result = append(result, t)
	for _, field := range t.fields {
		result = append(result, field)
	}
	for _, method := range t.methods {
		result = append(result, method)
	}
	return result
}

// Sealed returns true if no further instances can be added
func (t *TypeInfo) Sealed() bool {
	return t.sealed
}

// Seal makes type info and its members read only
func (t *TypeInfo) Seal() {
	t.sealed = true
	for _, field := range t.fields {
		field.sealed = true
	}
	for _, method := range t.methods {
		method.sealed = true
	}
}

// Merge adds direct instances and members of live type info
func (t *TypeInfo) Merge(live *TypeInfo) {
	if live == nil {
		return
	}
	for _, instance := range live.instances {
		t.Add(instance)
	}
	if t.MixinFor == "" {
		t.MixinFor = live.MixinFor
	}
	for _, field := range live.fields {
		target := t.EnsureField(field.Name)
		for _, instance := range field.instances {
			target.Add(instance)
		}
	}
	for _, method := range live.methods {
		target := t.EnsureMethod(method.Name, method.Params...)
		target.AnySignature = target.AnySignature || method.AnySignature
		for _, instance := range method.instances {
			target.Add(instance)
		}
	}
}

func (f *FieldInfo) Element() Element {
	return Element{Kind: FieldElement, Type: f.Owner, Name: f.Name}
}

func (m *MethodInfo) Element() Element {
	return Element{Kind: MethodElement, Type: m.Owner, Name: m.Name, Params: m.Params}
}
