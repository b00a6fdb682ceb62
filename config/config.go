package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/tagmeta/shared"
)

// Mode selects index provider
type Mode string

const (
	ModeLive     Mode = "live"
	ModeSnapshot Mode = "snapshot"
)

const (
	// SnapshotURLEnv overrides snapshot URL of the default config
	SnapshotURLEnv = "TAGMETA_SNAPSHOT"
	// ConfigURLEnv points default loader to a config file
	ConfigURLEnv = "TAGMETA_CONFIG"

	defaultMaxDepth = 16
)

// Config represents tag metadata loader config
type Config struct {
	Mode               Mode   `yaml:"Mode" json:",omitempty"`
	SnapshotURL        string `yaml:"SnapshotURL" json:",omitempty"`
	LogLevel           string `yaml:"LogLevel" json:",omitempty"`
	MaxStereotypeDepth int    `yaml:"MaxStereotypeDepth" json:",omitempty"`
	MixinTag           string `yaml:"MixinTag" json:",omitempty"`
}

// New creates config with defaults
func New() *Config {
	ret := &Config{}
	ret.Init()
	return ret
}

// Init sets defaults
func (c *Config) Init() {
	if c.Mode == "" {
		c.Mode = ModeLive
		if c.SnapshotURL != "" {
			c.Mode = ModeSnapshot
		}
	}
	c.Mode = Mode(strings.ToLower(string(c.Mode)))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.MaxStereotypeDepth == 0 {
		c.MaxStereotypeDepth = defaultMaxDepth
	}
	if c.MixinTag == "" {
		c.MixinTag = "mixin"
	}
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeLive:
	case ModeSnapshot:
		if c.SnapshotURL == "" {
			return fmt.Errorf("SnapshotURL was empty for %v mode", c.Mode)
		}
	default:
		return fmt.Errorf("unsupported mode: %v", c.Mode)
	}
	if c.MaxStereotypeDepth < 0 {
		return fmt.Errorf("invalid MaxStereotypeDepth: %v", c.MaxStereotypeDepth)
	}
	return nil
}

// Load loads config from yaml or json URL
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config: %v", URL)
	}
	ret := &Config{}
	if err = shared.UnmarshalWithExt(data, ret, shared.Ext(URL)); err != nil {
		return nil, errors.Wrapf(err, "invalid config: %v", URL)
	}
	ret.Init()
	return ret, ret.Validate()
}
