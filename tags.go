package tagmeta

import (
	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/kind"
	"github.com/viant/tagmeta/shared"
	"github.com/viant/tagmeta/value"
)

// Tags represents resolved tags of a single element
type Tags struct {
	target    index.Info
	kinds     *kind.Registry
	converter value.Converter
}

// Target returns element identity
func (t *Tags) Target() index.Element {
	return t.target.Element()
}

// All returns every resolved tag in element insertion order: direct declarations,
// stereotype expansions, then mixin overlays.
func (t *Tags) All() ([]*value.Value, error) {
	return t.convert(t.target.Instances())
}

// Get returns the strongest tag of a non repeatable kind, picked in order: mixin, direct, stereotype.
// It fails with shared.AmbiguousError for repeatable kinds or when the strongest source holds more than one tag.
func (t *Tags) Get(kindName string) (*value.Value, bool, error) {
	aKind := t.kinds.Ensure(kindName)
	candidates := t.candidates(kindName)
	if aKind.Repeatable {
		return nil, false, t.ambiguous(aKind, candidates, true)
	}
	for _, source := range index.Precedence {
		var matched []*index.Instance
		for _, candidate := range candidates {
			if candidate.Source == source {
				matched = append(matched, candidate)
			}
		}
		switch len(matched) {
		case 0:
			continue
		case 1:
			ret, err := t.converter.Convert(aKind, matched[0])
			if err != nil {
				return nil, false, err
			}
			return ret, true, nil
		default:
			return nil, false, t.ambiguous(aKind, matched, false)
		}
	}
	return nil, false, nil
}

// AllOf returns every resolved tag of supplied kind, regardless of repeatability
func (t *Tags) AllOf(kindName string) ([]*value.Value, error) {
	return t.convert(t.candidates(kindName))
}

func (t *Tags) candidates(kindName string) []*index.Instance {
	var result []*index.Instance
	for _, instance := range t.target.Instances() {
		if instance.Kind == kindName {
			result = append(result, instance)
		}
	}
	return result
}

func (t *Tags) convert(instances []*index.Instance) ([]*value.Value, error) {
	var result = make([]*value.Value, 0, len(instances))
	for _, instance := range instances {
		aValue, err := t.converter.Convert(t.kinds.Ensure(instance.Kind), instance)
		if err != nil {
			return nil, err
		}
		result = append(result, aValue)
	}
	return result, nil
}

func (t *Tags) ambiguous(aKind *kind.Kind, instances []*index.Instance, repeatable bool) error {
	var sources = make([]string, 0, len(instances))
	for _, instance := range instances {
		sources = append(sources, instance.Describe())
	}
	return &shared.AmbiguousError{Kind: aKind.Name, Target: t.target.Element().String(), Sources: sources, Repeatable: repeatable}
}
