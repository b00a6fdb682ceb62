package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/viant/afs/url"
)

// Options represents tagmeta command line options
type Options struct {
	ConfigURL   string   `short:"c" long:"config" description:"loader config URL (yaml or json)"`
	SnapshotURL string   `short:"s" long:"snapshot" description:"snapshot URL"`
	Type        string   `short:"t" long:"type" description:"type name, i.e. example.com/shop.Order"`
	Field       string   `short:"f" long:"field" description:"field name"`
	Method      string   `short:"m" long:"method" description:"method name"`
	Params      []string `short:"p" long:"param" description:"method parameter type name, repeat for each parameter"`
	Kind        string   `short:"k" long:"kind" description:"tag kind to resolve"`
	All         bool     `short:"a" long:"all" description:"list every tag of the kind instead of resolving one"`
	Problems    bool     `short:"P" long:"problems" description:"print snapshot and stereotype problems"`
	Version     bool     `short:"v" long:"version" description:"build version"`
}

// Init validates options and expands relative locations
func (o *Options) Init() error {
	if o.Type == "" {
		return fmt.Errorf("type was empty")
	}
	if o.Field != "" && o.Method != "" {
		return fmt.Errorf("field and method are mutually exclusive")
	}
	if len(o.Params) > 0 && o.Method == "" {
		return fmt.Errorf("params require method")
	}
	if o.All && o.Kind == "" {
		return fmt.Errorf("all requires kind")
	}
	o.ConfigURL = ensureAbsPath(o.ConfigURL)
	o.SnapshotURL = ensureAbsPath(o.SnapshotURL)
	return nil
}

func ensureAbsPath(location string) string {
	if strings.Contains(location, "~") {
		location = strings.Replace(location, "~", os.Getenv("HOME"), 1)
	}
	if location == "" || !url.IsRelative(location) {
		return location
	}
	if wd, _ := os.Getwd(); wd != "" {
		return url.Join(wd, location)
	}
	return location
}
