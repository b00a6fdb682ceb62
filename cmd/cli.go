package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jessevdk/go-flags"
	"github.com/viant/afs"
	"github.com/viant/tagmeta"
	"github.com/viant/tagmeta/config"
	"github.com/viant/tagmeta/shared/logging"
	"github.com/viant/tagmeta/value"
)

// RunApp parses arguments, resolves requested element and prints its tags to writer
func RunApp(version string, args []string, writer io.Writer) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	if options.Version {
		_, err := fmt.Fprintf(writer, "tagmeta: version: %v\n", version)
		return err
	}
	if err := options.Init(); err != nil {
		return err
	}
	return Run(context.Background(), options, writer)
}

// Run prints tags of element selected by options
func Run(ctx context.Context, options *Options, writer io.Writer) error {
	cfg, err := buildConfig(ctx, options)
	if err != nil {
		return err
	}
	loader, err := tagmeta.New(ctx,
		tagmeta.WithConfig(cfg),
		tagmeta.WithKinds(tagmeta.Kinds.Clone()),
		tagmeta.WithLogger(logging.New(cfg.LogLevel, nil)),
	)
	if err != nil {
		return err
	}
	if options.Problems {
		for _, problem := range loader.Problems() {
			fmt.Fprintf(writer, "problem: %v\n", problem)
		}
	}
	tags, err := lookup(loader, options)
	if err != nil {
		return err
	}
	if options.Kind == "" {
		all, err := tags.All()
		if err != nil {
			return err
		}
		return printValues(writer, all)
	}
	if options.All {
		all, err := tags.AllOf(options.Kind)
		if err != nil {
			return err
		}
		return printValues(writer, all)
	}
	aValue, ok, err := tags.Get(options.Kind)
	if err != nil {
		return err
	}
	if !ok {
		_, err = fmt.Fprintf(writer, "%v: not declared on %v\n", options.Kind, tags.Target())
		return err
	}
	return printValues(writer, []*value.Value{aValue})
}

func buildConfig(ctx context.Context, options *Options) (*config.Config, error) {
	cfg := config.New()
	if options.ConfigURL != "" {
		var err error
		if cfg, err = config.Load(ctx, afs.New(), options.ConfigURL); err != nil {
			return nil, err
		}
	}
	if options.SnapshotURL != "" {
		cfg.Mode = config.ModeSnapshot
		cfg.SnapshotURL = options.SnapshotURL
	}
	return cfg, cfg.Validate()
}

func lookup(loader *tagmeta.Loader, options *Options) (*tagmeta.Tags, error) {
	switch {
	case options.Field != "":
		return loader.OnFieldName(options.Type, options.Field)
	case options.Method != "":
		return loader.OnMethodName(options.Type, options.Method, options.Params...)
	}
	return loader.OnName(options.Type)
}

func printValues(writer io.Writer, values []*value.Value) error {
	for _, aValue := range values {
		if _, err := fmt.Fprintln(writer, aValue.String()); err != nil {
			return err
		}
	}
	return nil
}
