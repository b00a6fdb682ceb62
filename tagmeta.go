// Package tagmeta resolves tag metadata declared on Go types, fields and methods.
//
// Tags can be declared directly (struct tags, type level tags on blank fields, MethodTags),
// contributed by mixin carriers, or expanded from stereotype kinds. A single value is
// resolved with mixin > direct > stereotype precedence; repeatable kinds are only
// available with AllOf.
package tagmeta

import (
	"context"
	"os"
	"reflect"
	"sync"

	"github.com/viant/tagmeta/config"
	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/kind"
)

var (
	// Types is the default live types registry
	Types = index.NewTypes()
	// Kinds is the default tag kinds registry
	Kinds = kind.NewRegistry()

	defaultOnce   sync.Once
	defaultLoader *Loader
	defaultErr    error
)

// Register registers types with the default registry, it has to be called before first lookup
func Register(rTypes ...reflect.Type) error {
	return Types.Register(rTypes...)
}

// RegisterKinds registers tag kinds with the default registry, it has to be called before first lookup
func RegisterKinds(kinds ...*kind.Kind) error {
	return Kinds.Register(kinds...)
}

// Default returns default loader, configured with TAGMETA_CONFIG or TAGMETA_SNAPSHOT when set,
// live introspection otherwise
func Default() (*Loader, error) {
	defaultOnce.Do(func() {
		ctx := context.Background()
		cfg := config.New()
		if URL := os.Getenv(config.ConfigURLEnv); URL != "" {
			if cfg, defaultErr = config.Load(ctx, nil, URL); defaultErr != nil {
				return
			}
		} else if URL := os.Getenv(config.SnapshotURLEnv); URL != "" {
			cfg = &config.Config{Mode: config.ModeSnapshot, SnapshotURL: URL}
			cfg.Init()
		}
		defaultLoader, defaultErr = New(ctx, WithConfig(cfg), WithTypes(Types), WithKinds(Kinds))
	})
	return defaultLoader, defaultErr
}

// On returns tags of supplied type using default loader
func On(rType reflect.Type) (*Tags, error) {
	loader, err := Default()
	if err != nil {
		return nil, err
	}
	return loader.On(rType), nil
}

// OnField returns tags of type field using default loader
func OnField(rType reflect.Type, name string) (*Tags, error) {
	loader, err := Default()
	if err != nil {
		return nil, err
	}
	return loader.OnField(rType, name)
}

// OnMethod returns tags of type method using default loader
func OnMethod(rType reflect.Type, name string, params ...reflect.Type) (*Tags, error) {
	loader, err := Default()
	if err != nil {
		return nil, err
	}
	return loader.OnMethod(rType, name, params...)
}
