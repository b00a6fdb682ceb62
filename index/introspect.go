package index

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/viant/tagmeta/kind"
)

// DefaultMixinTag names type level tag declaring mixin target, i.e. _ struct{} `mixin:"example.com/shop.Order"`
const DefaultMixinTag = "mixin"

// MethodTagger is implemented by types declaring method tags, keys are method names
// or signatures, i.e. "Total" or "Total(string)"
type MethodTagger interface {
	MethodTags() map[string]reflect.StructTag
}

var methodTaggerType = reflect.TypeOf((*MethodTagger)(nil)).Elem()

// Introspector builds type info from loaded types: type level tags are declared on blank fields,
// field tags on struct fields and method tags with MethodTagger.
type Introspector struct {
	Kinds    *kind.Registry
	MixinTag string
}

// NewIntrospector creates introspector
func NewIntrospector(kinds *kind.Registry, mixinTag string) *Introspector {
	if mixinTag == "" {
		mixinTag = DefaultMixinTag
	}
	return &Introspector{Kinds: kinds, MixinTag: mixinTag}
}

// Introspect returns type info, malformed declarations are skipped and reported with returned error
func (i *Introspector) Introspect(rType reflect.Type) (*TypeInfo, error) {
	rType = Deref(rType)
	info := NewTypeInfo(TypeName(rType))
	if rType == nil {
		return info, fmt.Errorf("unable to introspect nil type")
	}
	var errs []error
	if rType.Kind() == reflect.Struct {
		typeOrdinal := 0
		for f := 0; f < rType.NumField(); f++ {
			field := rType.Field(f)
			declarations, err := kind.Parse(field.Tag)
			if err != nil {
				errs = append(errs, fmt.Errorf("%v.%v: %w", info.Name, field.Name, err))
				continue
			}
			if field.Name == "_" {
				for _, declaration := range declarations {
					if declaration.Kind == i.MixinTag {
						info.MixinFor = mixinTarget(declaration)
						continue
					}
					if i.add(&info.tagged, declaration, typeOrdinal) {
						typeOrdinal++
					}
				}
				continue
			}
			fieldInfo := info.EnsureField(field.Name)
			for ordinal, declaration := range declarations {
				i.add(&fieldInfo.tagged, declaration, ordinal)
			}
		}
	}
	errs = append(errs, i.introspectMethods(rType, info)...)
	return info, errors.Join(errs...)
}

func (i *Introspector) introspectMethods(rType reflect.Type, info *TypeInfo) []error {
	ptrType := reflect.PointerTo(rType)
	for m := 0; m < ptrType.NumMethod(); m++ {
		method := ptrType.Method(m)
		if method.Name == "MethodTags" {
			continue
		}
		var params []string
		for p := 1; p < method.Type.NumIn(); p++ {
			params = append(params, TypeName(method.Type.In(p)))
		}
		info.EnsureMethod(method.Name, params...)
	}
	if !ptrType.Implements(methodTaggerType) {
		return nil
	}
	tagger, ok := reflect.New(rType).Interface().(MethodTagger)
	if !ok {
		return nil
	}
	methodTags := tagger.MethodTags()
	keys := make([]string, 0, len(methodTags))
	for key := range methodTags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var errs []error
	for _, key := range keys {
		tag := methodTags[key]
		methodInfo, err := i.methodInfo(info, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		declarations, err := kind.Parse(tag)
		if err != nil {
			errs = append(errs, fmt.Errorf("%v.%v: %w", info.Name, key, err))
			continue
		}
		for ordinal, declaration := range declarations {
			i.add(&methodInfo.tagged, declaration, ordinal)
		}
	}
	return errs
}

func (i *Introspector) methodInfo(info *TypeInfo, key string) (*MethodInfo, error) {
	name, params, hasParams, err := ParseSignature(key)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", info.Name, err)
	}
	if hasParams {
		if ret, ok := info.Method(name, params...); ok {
			return ret, nil
		}
	} else if candidates := info.MethodsNamed(name); len(candidates) == 1 {
		return candidates[0], nil
	}
	if info.MixinFor == "" {
		return nil, fmt.Errorf("%v: no method %v for method tags", info.Name, key)
	}
	ret := info.EnsureMethod(name, params...)
	ret.AnySignature = !hasParams
	return ret, nil
}

func (i *Introspector) add(target *tagged, declaration *kind.Declaration, ordinal int) bool {
	if i.Kinds != nil && !i.Kinds.Has(declaration.Kind) {
		return false
	}
	return target.Add(&Instance{Kind: declaration.Kind, Values: declaration.Values, Source: SourceDirect, Origin: "#" + strconv.Itoa(ordinal)})
}

func mixinTarget(declaration *kind.Declaration) string {
	if value, ok := declaration.Values[kind.DefaultAttribute]; ok {
		return fmt.Sprint(value)
	}
	if value, ok := declaration.Values["target"]; ok {
		return fmt.Sprint(value)
	}
	return ""
}
