package index

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/tagmeta/kind"
	"github.com/viant/tagmeta/shared"
	"gopkg.in/yaml.v3"
)

// SnapshotVersion is the supported snapshot format version
const SnapshotVersion = 1

type (
	// Snapshot represents precomputed index artifact
	Snapshot struct {
		URL     string
		Version int
		Kinds   []*kind.Kind
		Types   []*TypeEntry
		Mixins  []*Mixin
	}

	// TypeEntry represents snapshot type entry
	TypeEntry struct {
		Name     string              `yaml:"name"`
		Stub     bool                `yaml:"stub,omitempty"`
		MixinFor string              `yaml:"mixinFor,omitempty"`
		Tags     []*kind.Declaration `yaml:"tags,omitempty"`
		Fields   []*MemberEntry      `yaml:"fields,omitempty"`
		Methods  []*MemberEntry      `yaml:"methods,omitempty"`
	}

	// MemberEntry represents snapshot field or method entry
	MemberEntry struct {
		Name   string              `yaml:"name"`
		Params []string            `yaml:"params,omitempty"`
		Tags   []*kind.Declaration `yaml:"tags,omitempty"`
	}

	// Mixin represents mixin association: carrier tags apply to target
	Mixin struct {
		Carrier string `yaml:"carrier"`
		Target  string `yaml:"target"`
	}

	document struct {
		Version int         `yaml:"version"`
		Kinds   []yaml.Node `yaml:"kinds"`
		Types   []yaml.Node `yaml:"types"`
		Mixins  []yaml.Node `yaml:"mixins"`
	}
)

// LoadSnapshot reads and decodes snapshot, malformed entries are skipped and returned as problems,
// error is returned only when the snapshot as a whole is unusable.
func LoadSnapshot(ctx context.Context, fs afs.Service, URL string) (*Snapshot, []error, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to load snapshot: %v", URL)
	}
	return DecodeSnapshot(URL, data)
}

// DecodeSnapshot decodes yaml or json snapshot
func DecodeSnapshot(URL string, data []byte) (*Snapshot, []error, error) {
	doc := &document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to decode snapshot: %v", URL)
	}
	if doc.Version != SnapshotVersion {
		return nil, nil, fmt.Errorf("unsupported snapshot %v version: %v, expected %v", URL, doc.Version, SnapshotVersion)
	}
	ret := &Snapshot{URL: URL, Version: doc.Version}
	var problems []error
	malformed := func(position int, name string, err error) {
		problems = append(problems, &shared.MalformedEntryError{URL: URL, Position: position, Name: name, Err: err})
	}
	kindNames := map[string]bool{}
	for i := range doc.Kinds {
		aKind := &kind.Kind{}
		if err := doc.Kinds[i].Decode(aKind); err != nil {
			malformed(i, "kinds", err)
			continue
		}
		if err := aKind.Validate(); err != nil {
			malformed(i, aKind.Name, err)
			continue
		}
		if kindNames[aKind.Name] {
			malformed(i, aKind.Name, fmt.Errorf("duplicate kind"))
			continue
		}
		kindNames[aKind.Name] = true
		ret.Kinds = append(ret.Kinds, aKind)
	}
	typeNames := map[string]bool{}
	for i := range doc.Types {
		entry := &TypeEntry{}
		if err := doc.Types[i].Decode(entry); err != nil {
			malformed(i, entryName(&doc.Types[i]), err)
			continue
		}
		if err := entry.Validate(); err != nil {
			malformed(i, entry.Name, err)
			continue
		}
		if typeNames[entry.Name] {
			malformed(i, entry.Name, fmt.Errorf("duplicate type"))
			continue
		}
		typeNames[entry.Name] = true
		ret.Types = append(ret.Types, entry)
	}
	for i := range doc.Mixins {
		mixin := &Mixin{}
		if err := doc.Mixins[i].Decode(mixin); err != nil {
			malformed(i, "mixins", err)
			continue
		}
		if mixin.Carrier == "" || mixin.Target == "" || mixin.Carrier == mixin.Target {
			malformed(i, "mixins", fmt.Errorf("invalid mixin association %v -> %v", mixin.Carrier, mixin.Target))
			continue
		}
		ret.Mixins = append(ret.Mixins, mixin)
	}
	return ret, problems, nil
}

func (e *TypeEntry) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("type name was empty")
	}
	if e.MixinFor == e.Name {
		return fmt.Errorf("type %v can not be its own mixin", e.Name)
	}
	if err := validateDeclarations(e.Tags); err != nil {
		return err
	}
	for _, members := range [][]*MemberEntry{e.Fields, e.Methods} {
		for i, member := range members {
			if member == nil || member.Name == "" {
				return fmt.Errorf("member #%v name was empty", i)
			}
			if err := validateDeclarations(member.Tags); err != nil {
				return fmt.Errorf("%v: %w", member.Name, err)
			}
		}
	}
	return nil
}

// TypeInfo converts entry into type info
func (e *TypeEntry) TypeInfo() *TypeInfo {
	ret := NewTypeInfo(e.Name)
	ret.Stub = e.Stub
	ret.MixinFor = e.MixinFor
	addDeclarations(&ret.tagged, e.Tags)
	for _, field := range e.Fields {
		addDeclarations(&ret.EnsureField(field.Name).tagged, field.Tags)
	}
	for _, method := range e.Methods {
		addDeclarations(&ret.EnsureMethod(method.Name, method.Params...).tagged, method.Tags)
	}
	return ret
}

func addDeclarations(target *tagged, declarations []*kind.Declaration) {
	for i, declaration := range declarations {
		target.Add(&Instance{Kind: declaration.Kind, Values: declaration.Values, Source: SourceDirect, Origin: "#" + strconv.Itoa(i)})
	}
}

func validateDeclarations(declarations []*kind.Declaration) error {
	for i, declaration := range declarations {
		if declaration == nil || declaration.Kind == "" {
			return fmt.Errorf("tag #%v kind was empty", i)
		}
	}
	return nil
}

func entryName(node *yaml.Node) string {
	if node.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "name" {
			return node.Content[i+1].Value
		}
	}
	return ""
}
