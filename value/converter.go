package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/kind"
)

// Converter converts raw tag instance into typed value; the same instance has to produce value-equal result
type Converter interface {
	Convert(aKind *kind.Kind, instance *index.Instance) (*Value, error)
}

// Schema converts payload attributes according to kind attribute types,
// attributes without schema are passed as declared
type Schema struct {
	Kinds *kind.Registry
}

// NewSchema creates schema based converter
func NewSchema(kinds *kind.Registry) *Schema {
	return &Schema{Kinds: kinds}
}

func (s *Schema) Convert(aKind *kind.Kind, instance *index.Instance) (*Value, error) {
	return s.convert(aKind, instance.Kind, instance.Values)
}

func (s *Schema) convert(aKind *kind.Kind, kindName string, values map[string]interface{}) (*Value, error) {
	if aKind == nil {
		aKind = s.lookup(kindName)
	}
	ret := &Value{Kind: kindName}
	if len(values) == 0 {
		return ret, nil
	}
	ret.Values = make(map[string]interface{}, len(values))
	for name, raw := range values {
		attr := aKind.Attribute(name)
		if attr == nil {
			ret.Values[name] = raw
			continue
		}
		converted, err := s.attribute(attr, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %v.%v value %v: %w", kindName, name, raw, err)
		}
		ret.Values[name] = converted
	}
	return ret, nil
}

func (s *Schema) lookup(name string) *kind.Kind {
	if s.Kinds == nil {
		return &kind.Kind{Name: name}
	}
	return s.Kinds.Ensure(name)
}

func (s *Schema) attribute(attr *kind.Attribute, raw interface{}) (interface{}, error) {
	switch attr.Type {
	case kind.Number:
		return number(raw)
	case kind.Boolean:
		switch actual := raw.(type) {
		case bool:
			return actual, nil
		case string:
			return strconv.ParseBool(strings.TrimSpace(actual))
		}
		return nil, fmt.Errorf("expected boolean")
	case kind.Tags:
		return s.nested(raw)
	case kind.TypeRef:
		text, ok := raw.(string)
		if !ok || strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("expected type name")
		}
		return strings.TrimSpace(text), nil
	}
	if text, ok := raw.(string); ok {
		return text, nil
	}
	return fmt.Sprint(raw), nil
}

func (s *Schema) nested(raw interface{}) ([]*Value, error) {
	items, ok := raw.([]interface{})
	if !ok {
		if declarations, ok := raw.([]*kind.Declaration); ok {
			for _, declaration := range declarations {
				items = append(items, declaration)
			}
		} else {
			return nil, fmt.Errorf("expected tag list")
		}
	}
	var result = make([]*Value, 0, len(items))
	for i, item := range items {
		var kindName string
		var values map[string]interface{}
		switch actual := item.(type) {
		case *kind.Declaration:
			kindName, values = actual.Kind, actual.Values
		case map[string]interface{}:
			kindName, _ = actual["kind"].(string)
			values, _ = actual["values"].(map[string]interface{})
		}
		if kindName == "" {
			return nil, fmt.Errorf("nested tag #%v has no kind", i)
		}
		nested, err := s.convert(nil, kindName, values)
		if err != nil {
			return nil, err
		}
		result = append(result, nested)
	}
	return result, nil
}

func number(raw interface{}) (interface{}, error) {
	switch actual := raw.(type) {
	case int:
		return actual, nil
	case int64:
		return int(actual), nil
	case uint64:
		return int(actual), nil
	case float64:
		return actual, nil
	case string:
		text := strings.TrimSpace(actual)
		if ret, err := strconv.Atoi(text); err == nil {
			return ret, nil
		}
		return strconv.ParseFloat(text, 64)
	}
	return nil, fmt.Errorf("expected number")
}
