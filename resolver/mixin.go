package resolver

import (
	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/kind"
	"github.com/viant/tagmeta/shared"
	"github.com/viant/tagmeta/shared/logging"
)

// Mixins attaches carrier tags to association targets with mixin provenance
type Mixins struct {
	kinds  *kind.Registry
	logger logging.Logger
}

func NewMixins(kinds *kind.Registry, logger logging.Logger) *Mixins {
	if kinds == nil {
		kinds = kind.NewRegistry()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Mixins{kinds: kinds, logger: logger}
}

// Resolve applies every mixin association
func (m *Mixins) Resolve(x *index.Index) {
	for _, mixin := range x.Mixins() {
		carrier, ok := x.Lookup(mixin.Carrier)
		if !ok {
			m.logger.Warn("mixin carrier not found", "carrier", mixin.Carrier, "target", mixin.Target)
			continue
		}
		target, ok := x.Lookup(mixin.Target)
		if !ok {
			m.logger.Debug("mixin target not loaded yet", "carrier", mixin.Carrier, "target", mixin.Target)
			continue
		}
		m.Apply(carrier, target)
	}
}

// ResolveType applies associations targeting supplied type, carriers have to be indexed already
func (m *Mixins) ResolveType(x *index.Index, target *index.TypeInfo) {
	for _, mixin := range x.MixinsFor(target.Name) {
		carrier, ok := x.Lookup(mixin.Carrier)
		if !ok {
			continue
		}
		m.Apply(carrier, target)
	}
}

// Apply copies carrier type, field and method tags onto target, overlays of members
// missing on target are inert.
func (m *Mixins) Apply(carrier, target *index.TypeInfo) {
	m.copyInstances(carrier.Name, carrier, target)
	for _, field := range carrier.Fields() {
		targetField, ok := target.Field(field.Name)
		if !ok {
			m.inert(carrier, target, field.Element())
			continue
		}
		m.copyInstances(carrier.Name, field, targetField)
	}
	for _, method := range carrier.Methods() {
		targetMethod, ok := m.matchMethod(method, target)
		if !ok {
			m.inert(carrier, target, method.Element())
			continue
		}
		m.copyInstances(carrier.Name, method, targetMethod)
	}
}

func (m *Mixins) matchMethod(method *index.MethodInfo, target *index.TypeInfo) (*index.MethodInfo, bool) {
	if ret, ok := target.Method(method.Name, method.Params...); ok {
		return ret, true
	}
	if method.AnySignature {
		if candidates := target.MethodsNamed(method.Name); len(candidates) == 1 {
			return candidates[0], true
		}
	}
	return nil, false
}

func (m *Mixins) inert(carrier, target *index.TypeInfo, member index.Element) {
	shared.Log("mixin %v overlay %v is not declared on %v", carrier.Name, member.String(), target.Name)
	if m.logger.IsDebugEnabled() {
		m.logger.Debug("inert mixin overlay", "carrier", carrier.Name, "target", target.Name, "member", member.String())
	}
}

func (m *Mixins) copyInstances(carrier string, from index.Info, to Target) {
	for _, instance := range m.effective(from.Instances()) {
		to.Add(instance.With(index.SourceMixin, carrier+":"+instance.Describe()))
	}
}

// effective returns carrier instances surviving carrier precedence: a non repeatable kind
// keeps only instances of its strongest source, repeatable kinds keep all.
func (m *Mixins) effective(instances []*index.Instance) []*index.Instance {
	strongest := map[string]int{}
	for _, instance := range instances {
		rank := instance.Source.Rank()
		if current, ok := strongest[instance.Kind]; !ok || rank < current {
			strongest[instance.Kind] = rank
		}
	}
	var result = make([]*index.Instance, 0, len(instances))
	for _, instance := range instances {
		if !m.kinds.Ensure(instance.Kind).Repeatable && instance.Source.Rank() != strongest[instance.Kind] {
			continue
		}
		result = append(result, instance)
	}
	return result
}
