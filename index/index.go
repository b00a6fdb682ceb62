package index

import (
	"reflect"
	"sync"

	"github.com/viant/tagmeta/kind"
	"github.com/viant/tagmeta/shared"
	"github.com/viant/tagmeta/shared/logging"
	"golang.org/x/sync/singleflight"
)

type (
	// Index represents element to tag instances store
	Index struct {
		mux          sync.RWMutex
		types        map[string]*TypeInfo
		names        []string
		mixins       []*Mixin
		mixinKeys    map[Mixin]bool
		kinds        *kind.Registry
		live         *Types
		introspector *Introspector
		flight       singleflight.Group
		onLoad       func(info *TypeInfo)
		sealed       bool
		degraded     bool
		problems     *shared.Errors
		logger       logging.Logger
	}

	// Option mutates Index
	Option func(x *Index)
)

// WithLogger sets index logger
func WithLogger(logger logging.Logger) Option {
	return func(x *Index) {
		x.logger = logger
	}
}

// WithMixinTag sets type level tag name declaring mixin target
func WithMixinTag(name string) Option {
	return func(x *Index) {
		x.introspector.MixinTag = name
	}
}

// New creates an index backed by live types registry
func New(kinds *kind.Registry, live *Types, opts ...Option) *Index {
	if kinds == nil {
		kinds = kind.NewRegistry()
	}
	if live == nil {
		live = NewTypes()
	}
	ret := &Index{
		types:        map[string]*TypeInfo{},
		mixinKeys:    map[Mixin]bool{},
		kinds:        kinds,
		live:         live,
		introspector: NewIntrospector(kinds, ""),
		problems:     shared.NewErrors(),
		logger:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Apply adds snapshot entries and mixin associations
func (x *Index) Apply(snapshot *Snapshot) {
	if snapshot == nil {
		return
	}
	for _, entry := range snapshot.Types {
		x.store(entry.TypeInfo())
	}
	for _, mixin := range snapshot.Mixins {
		x.AddMixin(mixin)
	}
}

// Degrade switches index to live introspection only mode
func (x *Index) Degrade(err error) {
	x.mux.Lock()
	x.degraded = true
	x.mux.Unlock()
	x.problems.Append(err)
	x.logger.Warn("snapshot unavailable, using live introspection", "error", err.Error())
}

// Degraded returns true if snapshot could not be used
func (x *Index) Degraded() bool {
	x.mux.RLock()
	defer x.mux.RUnlock()
	return x.degraded
}

// Report records a loading problem
func (x *Index) Report(err error) {
	if err == nil {
		return
	}
	x.problems.Append(err)
	x.logger.Warn("index problem", "error", err.Error())
}

// Problems returns recorded loading problems
func (x *Index) Problems() []error {
	return x.problems.Errors()
}

func (x *Index) Kinds() *kind.Registry {
	return x.kinds
}

func (x *Index) Live() *Types {
	return x.live
}

// TypeOf returns type info for loaded type, introspecting it on first touch
func (x *Index) TypeOf(rType reflect.Type) *TypeInfo {
	rType = Deref(rType)
	name := TypeName(rType)
	x.mux.RLock()
	info, ok := x.types[name]
	x.mux.RUnlock()
	if ok && !(info.Stub && info.Sealed()) {
		return info
	}
	ret, _, _ := x.flight.Do(name, func() (interface{}, error) {
		x.mux.RLock()
		current, ok := x.types[name]
		x.mux.RUnlock()
		if ok && !(current.Stub && current.Sealed()) {
			return current, nil
		}
		return x.load(rType, current), nil
	})
	return ret.(*TypeInfo)
}

// Type returns type info by identity, falls back to live types registry
func (x *Index) Type(name string) (*TypeInfo, error) {
	if info, ok := x.Lookup(name); ok && !(info.Stub && info.Sealed()) {
		return info, nil
	}
	if rType, ok := x.live.Lookup(name); ok {
		return x.TypeOf(rType), nil
	}
	if info, ok := x.Lookup(name); ok {
		return info, nil
	}
	return nil, &shared.NotFoundError{Type: name}
}

// Lookup returns indexed type info without introspection
func (x *Index) Lookup(name string) (*TypeInfo, bool) {
	x.mux.RLock()
	defer x.mux.RUnlock()
	ret, ok := x.types[name]
	return ret, ok
}

// Infos returns indexed type infos in insertion order
func (x *Index) Infos() []*TypeInfo {
	x.mux.RLock()
	defer x.mux.RUnlock()
	var result = make([]*TypeInfo, 0, len(x.names))
	for _, name := range x.names {
		result = append(result, x.types[name])
	}
	return result
}

// Mixins returns mixin associations in declaration order
func (x *Index) Mixins() []*Mixin {
	x.mux.RLock()
	defer x.mux.RUnlock()
	return append([]*Mixin{}, x.mixins...)
}

// MixinsFor returns associations targeting supplied type
func (x *Index) MixinsFor(target string) []*Mixin {
	var result []*Mixin
	for _, mixin := range x.Mixins() {
		if mixin.Target == target {
			result = append(result, mixin)
		}
	}
	return result
}

// AddMixin adds mixin association unless present
func (x *Index) AddMixin(mixin *Mixin) bool {
	if mixin == nil || mixin.Carrier == "" || mixin.Target == "" || mixin.Carrier == mixin.Target {
		return false
	}
	x.mux.Lock()
	defer x.mux.Unlock()
	if x.mixinKeys[*mixin] {
		return false
	}
	x.mixinKeys[*mixin] = true
	x.mixins = append(x.mixins, mixin)
	return true
}

// Fill completes unsealed stub entry with live type data
func (x *Index) Fill(info *TypeInfo, rType reflect.Type) {
	if info.Sealed() {
		return
	}
	live, err := x.introspector.Introspect(rType)
	x.Report(err)
	info.Merge(live)
	info.Stub = false
	if info.MixinFor != "" {
		x.AddMixin(&Mixin{Carrier: info.Name, Target: info.MixinFor})
	}
}

// Seal marks pipeline completion: published infos become read only, types loaded later are
// passed to onLoad before being published.
func (x *Index) Seal(onLoad func(info *TypeInfo)) {
	x.mux.Lock()
	defer x.mux.Unlock()
	x.sealed = true
	x.onLoad = onLoad
	for _, info := range x.types {
		info.Seal()
	}
}

func (x *Index) load(rType reflect.Type, stub *TypeInfo) *TypeInfo {
	info, err := x.introspector.Introspect(rType)
	x.Report(err)
	if stub != nil {
		merged := NewTypeInfo(stub.Name)
		merged.MixinFor = stub.MixinFor
		merged.Merge(stub)
		merged.Merge(info)
		info = merged
	}
	x.mux.RLock()
	sealed, onLoad := x.sealed, x.onLoad
	x.mux.RUnlock()
	if sealed {
		if info.MixinFor != "" {
			if x.AddMixin(&Mixin{Carrier: info.Name, Target: info.MixinFor}) {
				if target, ok := x.Lookup(info.MixinFor); ok && target.Sealed() {
					x.logger.Warn("mixin carrier loaded after its target, overlay not applied", "carrier", info.Name, "target", info.MixinFor)
				}
			}
		}
		if onLoad != nil {
			onLoad(info)
		}
		info.Seal()
	}
	x.store(info)
	shared.Log("indexed %v (sealed: %v)", info.Name, sealed)
	return info
}

func (x *Index) store(info *TypeInfo) {
	x.mux.Lock()
	if _, ok := x.types[info.Name]; !ok {
		x.names = append(x.names, info.Name)
	}
	x.types[info.Name] = info
	x.mux.Unlock()
	if info.MixinFor != "" && !x.sealedState() {
		x.AddMixin(&Mixin{Carrier: info.Name, Target: info.MixinFor})
	}
}

func (x *Index) sealedState() bool {
	x.mux.RLock()
	defer x.mux.RUnlock()
	return x.sealed
}
