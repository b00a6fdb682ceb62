package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/tagmeta/kind"
)

// Value represents typed, attribute accessible tag value
type Value struct {
	Kind   string
	Values map[string]interface{}
}

// Get returns attribute value
func (v *Value) Get(name string) (interface{}, bool) {
	ret, ok := v.Values[name]
	return ret, ok
}

// Text returns attribute as text
func (v *Value) Text(name string) string {
	ret, ok := v.Values[name]
	if !ok || ret == nil {
		return ""
	}
	if text, ok := ret.(string); ok {
		return text
	}
	return fmt.Sprint(ret)
}

// Value returns positional attribute
func (v *Value) Value() interface{} {
	return v.Values[kind.DefaultAttribute]
}

// String returns annotation like form, i.e. @label(value = "x")
func (v *Value) String() string {
	builder := &strings.Builder{}
	builder.WriteString("@")
	builder.WriteString(v.Kind)
	if len(v.Values) == 0 {
		return builder.String()
	}
	builder.WriteString("(")
	for i, name := range v.names() {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(name)
		builder.WriteString(" = ")
		builder.WriteString(format(v.Values[name]))
	}
	builder.WriteString(")")
	return builder.String()
}

// names returns attribute names, positional value first
func (v *Value) names() []string {
	var result = make([]string, 0, len(v.Values))
	for name := range v.Values {
		if name != kind.DefaultAttribute {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	if _, ok := v.Values[kind.DefaultAttribute]; ok {
		result = append([]string{kind.DefaultAttribute}, result...)
	}
	return result
}

func format(value interface{}) string {
	switch actual := value.(type) {
	case string:
		return fmt.Sprintf("%q", actual)
	case []*Value:
		var items []string
		for _, item := range actual {
			items = append(items, item.String())
		}
		return "{" + strings.Join(items, ", ") + "}"
	}
	return fmt.Sprint(value)
}
