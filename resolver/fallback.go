package resolver

import (
	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/shared"
	"github.com/viant/tagmeta/shared/logging"
)

// Fallback completes snapshot stubs with live introspection and loads every registered live type
// and mixin association endpoint, so that later resolvers see the complete raw picture.
type Fallback struct {
	logger logging.Logger
}

func NewFallback(logger logging.Logger) *Fallback {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Fallback{logger: logger}
}

func (f *Fallback) Resolve(x *index.Index) {
	for _, info := range x.Infos() {
		if !info.Stub {
			continue
		}
		rType, ok := x.Live().Lookup(info.Name)
		if !ok {
			f.logger.Debug("snapshot stub without live type", "type", info.Name)
			continue
		}
		x.Fill(info, rType)
		shared.Log("filled stub %v", info.Name)
	}
	for _, name := range x.Live().Names() {
		if _, err := x.Type(name); err != nil {
			x.Report(err)
		}
	}
	for _, mixin := range x.Mixins() {
		for _, name := range []string{mixin.Carrier, mixin.Target} {
			if _, err := x.Type(name); err != nil {
				f.logger.Debug("mixin endpoint is not loaded", "type", name, "carrier", mixin.Carrier)
			}
		}
	}
}
