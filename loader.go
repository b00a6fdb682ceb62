package tagmeta

import (
	"context"
	"reflect"

	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/resolver"
	"github.com/viant/tagmeta/shared"
)

// Loader hands out resolution façades over fully resolved index
type Loader struct {
	options  *Options
	index    *index.Index
	pipeline *resolver.Pipeline
}

// New builds index with configured provider and runs resolver pipeline
func New(ctx context.Context, opts ...Option) (*Loader, error) {
	options := NewOptions(opts...)
	if err := options.Config.Validate(); err != nil {
		return nil, err
	}
	provider := options.Provider
	if provider == nil {
		provider = NewProvider(options.Config)
	}
	x, err := provider.Index(ctx, options)
	if err != nil {
		return nil, err
	}
	pipeline := resolver.New(options.Kinds, options.Config.MaxStereotypeDepth, options.Logger)
	pipeline.Seal(x)
	return &Loader{options: options, index: x, pipeline: pipeline}, nil
}

// On returns tags of supplied type
func (l *Loader) On(rType reflect.Type) *Tags {
	return l.tags(l.index.TypeOf(rType))
}

// OnField returns tags of type field
func (l *Loader) OnField(rType reflect.Type, name string) (*Tags, error) {
	return l.field(l.index.TypeOf(rType), name)
}

// OnMethod returns tags of type method matching parameter types
func (l *Loader) OnMethod(rType reflect.Type, name string, params ...reflect.Type) (*Tags, error) {
	return l.method(l.index.TypeOf(rType), name, index.TypeNames(params...))
}

// OnName returns tags of type identified by name, i.e. example.com/shop.Order
func (l *Loader) OnName(typeName string) (*Tags, error) {
	info, err := l.index.Type(typeName)
	if err != nil {
		return nil, err
	}
	return l.tags(info), nil
}

// OnFieldName returns tags of field of type identified by name
func (l *Loader) OnFieldName(typeName, name string) (*Tags, error) {
	info, err := l.index.Type(typeName)
	if err != nil {
		return nil, err
	}
	return l.field(info, name)
}

// OnMethodName returns tags of method of type identified by name
func (l *Loader) OnMethodName(typeName, name string, params ...string) (*Tags, error) {
	info, err := l.index.Type(typeName)
	if err != nil {
		return nil, err
	}
	return l.method(info, name, params)
}

// Problems returns non fatal problems: malformed snapshot entries, degraded snapshot, stereotype cycles
func (l *Loader) Problems() []error {
	return append(l.index.Problems(), l.pipeline.Problems()...)
}

// Degraded returns true when configured snapshot could not be used
func (l *Loader) Degraded() bool {
	return l.index.Degraded()
}

func (l *Loader) field(info *index.TypeInfo, name string) (*Tags, error) {
	field, ok := info.Field(name)
	if !ok {
		return nil, &shared.NotFoundError{Type: info.Name, Member: "field", Name: name}
	}
	return l.tags(field), nil
}

func (l *Loader) method(info *index.TypeInfo, name string, params []string) (*Tags, error) {
	method, ok := info.Method(name, params...)
	if !ok {
		return nil, &shared.NotFoundError{Type: info.Name, Member: "method", Name: name, Params: params}
	}
	return l.tags(method), nil
}

func (l *Loader) tags(target index.Info) *Tags {
	return &Tags{target: target, kinds: l.options.Kinds, converter: l.options.Converter}
}
