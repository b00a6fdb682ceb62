package tagmeta

import (
	"context"

	"github.com/viant/afs"
	"github.com/viant/tagmeta/config"
	"github.com/viant/tagmeta/index"
)

type (
	// Provider builds raw, unresolved index
	Provider interface {
		Index(ctx context.Context, options *Options) (*index.Index, error)
	}

	// LiveProvider builds index from live types only
	LiveProvider struct{}

	// SnapshotProvider builds index from precomputed snapshot, degrading to live types when snapshot is unusable
	SnapshotProvider struct {
		URL string
		FS  afs.Service
	}
)

func (p *LiveProvider) Index(_ context.Context, options *Options) (*index.Index, error) {
	return newIndex(options), nil
}

func (p *SnapshotProvider) Index(ctx context.Context, options *Options) (*index.Index, error) {
	ret := newIndex(options)
	fs := p.FS
	if fs == nil {
		fs = options.fs
	}
	snapshot, problems, err := index.LoadSnapshot(ctx, fs, p.URL)
	if err != nil {
		ret.Degrade(err)
		return ret, nil
	}
	for _, problem := range problems {
		ret.Report(problem)
	}
	for _, aKind := range snapshot.Kinds {
		if err := options.Kinds.Merge(aKind); err != nil {
			ret.Report(err)
		}
	}
	ret.Apply(snapshot)
	options.Logger.Info("snapshot loaded", "url", p.URL, "types", len(snapshot.Types), "mixins", len(snapshot.Mixins))
	return ret, nil
}

// NewProvider returns provider for config mode
func NewProvider(cfg *config.Config) Provider {
	if cfg.Mode == config.ModeSnapshot {
		return &SnapshotProvider{URL: cfg.SnapshotURL}
	}
	return &LiveProvider{}
}

func newIndex(options *Options) *index.Index {
	return index.New(options.Kinds, options.Types, index.WithLogger(options.Logger), index.WithMixinTag(options.Config.MixinTag))
}
