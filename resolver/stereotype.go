package resolver

import (
	"strconv"
	"strings"

	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/kind"
	"github.com/viant/tagmeta/shared"
)

// DefaultMaxDepth bounds nested stereotype expansion
const DefaultMaxDepth = 16

// Stereotypes expands stereotype instances into their bundled tags
type Stereotypes struct {
	kinds    *kind.Registry
	maxDepth int
}

func NewStereotypes(kinds *kind.Registry, maxDepth int) *Stereotypes {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Stereotypes{kinds: kinds, maxDepth: maxDepth}
}

// Resolve expands stereotypes on every indexed element
func (s *Stereotypes) Resolve(x *index.Index, problems *shared.Errors) {
	for _, info := range x.Infos() {
		s.ResolveType(info, problems)
	}
}

// ResolveType expands stereotypes on type and its members
func (s *Stereotypes) ResolveType(info *index.TypeInfo, problems *shared.Errors) {
	for _, element := range info.Elements() {
		target, ok := element.(Target)
		if !ok {
			continue
		}
		expanded := map[string]bool{}
		for _, instance := range append([]*index.Instance{}, target.Instances()...) {
			if instance.Source != index.SourceDirect {
				continue // expanded recursively or carried over by mixin
			}
			s.expand(target, instance, nil, expanded, problems)
		}
	}
}

// expand adds bundle of instance kind once per element, a kind reached by another path is skipped
func (s *Stereotypes) expand(target Target, instance *index.Instance, chain []string, expanded map[string]bool, problems *shared.Errors) {
	aKind, ok := s.kinds.Lookup(instance.Kind)
	if !ok || !aKind.Stereotype {
		return
	}
	for _, name := range chain {
		if name == aKind.Name {
			problems.Append(&shared.StereotypeCycleError{Chain: append(append([]string{}, chain...), aKind.Name), Target: target.Element().String()})
			return
		}
	}
	if len(chain) >= s.maxDepth {
		problems.Append(&shared.StereotypeCycleError{Chain: append(append([]string{}, chain...), aKind.Name), Target: target.Element().String(), Depth: true})
		return
	}
	if expanded[aKind.Name] {
		return
	}
	expanded[aKind.Name] = true
	chain = append(append([]string{}, chain...), aKind.Name)
	origin := strings.Join(chain, ">")
	for i, declaration := range aKind.Bundle {
		child := &index.Instance{Kind: declaration.Kind, Values: declaration.Values, Source: index.SourceStereotype, Origin: origin + "#" + strconv.Itoa(i)}
		target.Add(child)
		s.expand(target, child, chain, expanded, problems)
	}
}
