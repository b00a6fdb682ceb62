package kind

import (
	"fmt"
	"reflect"
	"strings"
)

// AttributeType defines payload attribute type
type AttributeType string

const (
	Text    AttributeType = "text"
	Number  AttributeType = "number"
	Boolean AttributeType = "boolean"
	TypeRef AttributeType = "type"
	Tags    AttributeType = "tags"
)

// DefaultAttribute holds positional tag value, i.e. `label:"x"` sets value=x
const DefaultAttribute = "value"

type (
	// Attribute represents named payload attribute
	Attribute struct {
		Name string        `yaml:"name" json:"name"`
		Type AttributeType `yaml:"type" json:"type"`
	}

	// Declaration represents a tag declaration: kind name with raw payload
	Declaration struct {
		Kind   string                 `yaml:"kind" json:"kind"`
		Values map[string]interface{} `yaml:"values,omitempty" json:"values,omitempty"`
	}

	// Kind represents tag metadata category
	Kind struct {
		Name       string         `yaml:"name" json:"name"`
		Repeatable bool           `yaml:"repeatable,omitempty" json:"repeatable,omitempty"`
		Stereotype bool           `yaml:"stereotype,omitempty" json:"stereotype,omitempty"`
		Attributes []*Attribute   `yaml:"attributes,omitempty" json:"attributes,omitempty"`
		Bundle     []*Declaration `yaml:"bundle,omitempty" json:"bundle,omitempty"`
	}

	// Option mutates Kind
	Option func(k *Kind)
)

// New creates a tag kind
func New(name string, opts ...Option) *Kind {
	ret := &Kind{Name: name}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// WithRepeatable marks kind as repeatable
func WithRepeatable() Option {
	return func(k *Kind) {
		k.Repeatable = true
	}
}

// WithAttribute adds payload attribute
func WithAttribute(name string, aType AttributeType) Option {
	return func(k *Kind) {
		k.Attributes = append(k.Attributes, &Attribute{Name: name, Type: aType})
	}
}

// WithBundle marks kind as stereotype bundling tag declared in struct tag form,
// i.e. `label:"svc" tag:"n=1"`
func WithBundle(bundle reflect.StructTag) Option {
	return func(k *Kind) {
		k.Stereotype = true
		declarations, _ := Parse(bundle)
		k.Bundle = append(k.Bundle, declarations...)
	}
}

// WithDeclarations marks kind as stereotype bundling supplied declarations
func WithDeclarations(declarations ...*Declaration) Option {
	return func(k *Kind) {
		k.Stereotype = true
		k.Bundle = append(k.Bundle, declarations...)
	}
}

// Attribute returns attribute by name or nil
func (k *Kind) Attribute(name string) *Attribute {
	for _, candidate := range k.Attributes {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

func (k *Kind) Validate() error {
	if strings.TrimSpace(k.Name) == "" {
		return fmt.Errorf("tag kind name was empty")
	}
	for _, attr := range k.Attributes {
		switch attr.Type {
		case Text, Number, Boolean, TypeRef, Tags:
		case "":
			attr.Type = Text
		default:
			return fmt.Errorf("unsupported %v.%v attribute type: %v", k.Name, attr.Name, attr.Type)
		}
	}
	if !k.Stereotype && len(k.Bundle) > 0 {
		return fmt.Errorf("tag kind %v declares bundle but is not a stereotype", k.Name)
	}
	for i, declaration := range k.Bundle {
		if declaration == nil || declaration.Kind == "" {
			return fmt.Errorf("stereotype %v bundle declaration #%v has no kind", k.Name, i)
		}
	}
	return nil
}
