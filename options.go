package tagmeta

import (
	"github.com/viant/afs"
	"github.com/viant/tagmeta/config"
	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/kind"
	"github.com/viant/tagmeta/shared/logging"
	"github.com/viant/tagmeta/value"
)

// Options stores loader dependencies
type Options struct {
	Config    *config.Config
	Types     *index.Types
	Kinds     *kind.Registry
	Converter value.Converter
	Provider  Provider
	Logger    logging.Logger
	fs        afs.Service
}

// Option mutates Options
type Option func(*Options)

// NewOptions builds Options from varargs.
func NewOptions(opts ...Option) *Options {
	ret := &Options{}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.Config == nil {
		ret.Config = config.New()
	}
	ret.Config.Init()
	if ret.Types == nil {
		ret.Types = index.NewTypes()
	}
	if ret.Kinds == nil {
		ret.Kinds = kind.NewRegistry()
	}
	if ret.Converter == nil {
		ret.Converter = value.NewSchema(ret.Kinds)
	}
	if ret.Logger == nil {
		ret.Logger = logging.New(ret.Config.LogLevel, nil)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

func WithConfig(cfg *config.Config) Option {
	return func(o *Options) {
		o.Config = cfg
	}
}

// WithTypes sets live types registry used for introspection fallback
func WithTypes(types *index.Types) Option {
	return func(o *Options) {
		o.Types = types
	}
}

func WithKinds(kinds *kind.Registry) Option {
	return func(o *Options) {
		o.Kinds = kinds
	}
}

func WithConverter(converter value.Converter) Option {
	return func(o *Options) {
		o.Converter = converter
	}
}

// WithProvider overrides provider selected by config mode
func WithProvider(provider Provider) Option {
	return func(o *Options) {
		o.Provider = provider
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithFS(fs afs.Service) Option {
	return func(o *Options) {
		o.fs = fs
	}
}
