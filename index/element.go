package index

import (
	"fmt"
	"reflect"
	"strings"
)

// ElementKind defines element category
type ElementKind int

const (
	TypeElement ElementKind = iota
	FieldElement
	MethodElement
)

// Element represents a type, field or method identity
type Element struct {
	Kind   ElementKind
	Type   string
	Name   string
	Params []string
}

func (e Element) String() string {
	switch e.Kind {
	case FieldElement:
		return e.Type + "." + e.Name
	case MethodElement:
		return e.Type + "." + Signature(e.Name, e.Params)
	}
	return e.Type
}

// TypeName returns type identity: package path qualified name for named types
func TypeName(rType reflect.Type) string {
	if rType == nil {
		return ""
	}
	if rType.Name() != "" {
		if pkg := rType.PkgPath(); pkg != "" {
			return pkg + "." + rType.Name()
		}
		return rType.Name()
	}
	switch rType.Kind() {
	case reflect.Ptr:
		return "*" + TypeName(rType.Elem())
	case reflect.Slice:
		return "[]" + TypeName(rType.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%v]%v", rType.Len(), TypeName(rType.Elem()))
	case reflect.Map:
		return "map[" + TypeName(rType.Key()) + "]" + TypeName(rType.Elem())
	}
	return rType.String()
}

// TypeNames returns type identities
func TypeNames(rTypes ...reflect.Type) []string {
	var result = make([]string, 0, len(rTypes))
	for _, rType := range rTypes {
		result = append(result, TypeName(rType))
	}
	return result
}

// Signature returns method signature, i.e. Total(string, int)
func Signature(name string, params []string) string {
	return name + "(" + strings.Join(params, ", ") + ")"
}

// ParseSignature parses method name with optional parameter list, i.e. "Total" or "Total(string,int)";
// the returned bool reports whether parameter list was present.
func ParseSignature(text string) (string, []string, bool, error) {
	text = strings.TrimSpace(text)
	index := strings.Index(text, "(")
	if index == -1 {
		if text == "" {
			return "", nil, false, fmt.Errorf("empty method signature")
		}
		return text, nil, false, nil
	}
	if !strings.HasSuffix(text, ")") {
		return "", nil, false, fmt.Errorf("invalid method signature: %v", text)
	}
	name := strings.TrimSpace(text[:index])
	if name == "" {
		return "", nil, false, fmt.Errorf("invalid method signature: %v", text)
	}
	var params []string
	for _, param := range strings.Split(text[index+1:len(text)-1], ",") {
		if param = strings.TrimSpace(param); param != "" {
			params = append(params, param)
		}
	}
	return name, params, true, nil
}
