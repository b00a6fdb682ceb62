package resolver

import (
	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/kind"
	"github.com/viant/tagmeta/shared"
	"github.com/viant/tagmeta/shared/logging"
)

// Pipeline runs classloader fallback, stereotype expansion and mixin attachment, in that order
type Pipeline struct {
	fallback    *Fallback
	stereotypes *Stereotypes
	mixins      *Mixins
	problems    *shared.Errors
	logger      logging.Logger
}

// New creates resolver pipeline
func New(kinds *kind.Registry, maxDepth int, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Pipeline{
		fallback:    NewFallback(logger),
		stereotypes: NewStereotypes(kinds, maxDepth),
		mixins:      NewMixins(kinds, logger),
		problems:    shared.NewErrors(),
		logger:      logger,
	}
}

// Resolve materializes index, it can be called repeatedly before Seal without duplicating instances
func (p *Pipeline) Resolve(x *index.Index) {
	p.problems.Reset()
	p.fallback.Resolve(x)
	p.stereotypes.Resolve(x, p.problems)
	p.mixins.Resolve(x)
}

// Seal resolves index and makes it read only, types introspected later are resolved on first touch
func (p *Pipeline) Seal(x *index.Index) {
	p.Resolve(x)
	for _, err := range p.problems.Errors() {
		p.logger.Warn("stereotype resolution problem", "error", err.Error())
	}
	x.Seal(func(info *index.TypeInfo) {
		p.stereotypes.ResolveType(info, p.problems)
		p.mixins.ResolveType(x, info)
	})
}

// Problems returns configuration problems reported during resolution
func (p *Pipeline) Problems() []error {
	return p.problems.Errors()
}
