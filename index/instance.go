package index

import (
	"fmt"
	"strings"
)

// Source defines tag instance provenance
type Source string

const (
	SourceDirect     Source = "direct"
	SourceMixin      Source = "mixin"
	SourceStereotype Source = "stereotype"
)

// Precedence lists sources from the strongest; containing type and package tiers are not supported
var Precedence = []Source{SourceMixin, SourceDirect, SourceStereotype}

// Rank returns source position in Precedence, lower is stronger
func (s Source) Rank() int {
	for i, candidate := range Precedence {
		if candidate == s {
			return i
		}
	}
	return len(Precedence)
}

// Instance represents a tag declared on an element
type Instance struct {
	Kind   string
	Values map[string]interface{}
	Source Source
	Origin string
}

// Key returns instance identity
func (i *Instance) Key() string {
	return i.Kind + "|" + string(i.Source) + "|" + i.Origin + "|" + canonical(i.Values)
}

// With returns instance copy with supplied provenance
func (i *Instance) With(source Source, origin string) *Instance {
	return &Instance{Kind: i.Kind, Values: i.Values, Source: source, Origin: origin}
}

// Describe returns provenance description used by diagnostics
func (i *Instance) Describe() string {
	if i.Origin == "" {
		return string(i.Source)
	}
	return string(i.Source) + "(" + i.Origin + ")"
}

func (i *Instance) String() string {
	return "@" + i.Kind + canonical(i.Values) + " " + i.Describe()
}

func canonical(values map[string]interface{}) string {
	if len(values) == 0 {
		return ""
	}
	// fmt sorts map keys
	return strings.TrimPrefix(fmt.Sprintf("%v", values), "map")
}
