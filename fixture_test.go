package tagmeta

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/kind"
	"github.com/viant/tagmeta/shared/logging"
	"github.com/viant/tagmeta/value"
)

type someClass struct {
	_     struct{} `label:"x"`
	_     struct{} `tag:"n=1"`
	_     struct{} `tag:"n=2"`
	Name  string   `label:"name-field" json:"name"`
	Plain string
}

func (s *someClass) Total(currency string) int { return 0 }

func (s *someClass) Reset() {}

func (s *someClass) MethodTags() map[string]reflect.StructTag {
	return map[string]reflect.StructTag{
		"Total":   `label:"total"`,
		"Reset()": `tag:"n=7"`,
	}
}

type target struct {
	_     struct{} `label:"target"`
	F     string
	Other string `label:"direct"`
}

func (t target) Submit(id int) error { return nil }

type targetMixin struct {
	_       struct{} `mixin:"github.com/viant/tagmeta.target" label:"from-mixin-type"`
	F       string   `label:"from-mixin"`
	Other   string   `label:"mixin-wins"`
	Missing string   `label:"inert"`
}

func (m targetMixin) MethodTags() map[string]reflect.StructTag {
	return map[string]reflect.StructTag{
		"Submit":      `label:"submit-mixin"`,
		"Absent(int)": `label:"inert"`,
	}
}

type contested struct {
	_ struct{} `label:"direct"`
}

type contestedMixinA struct {
	_ struct{} `mixin:"github.com/viant/tagmeta.contested" label:"a"`
}

type contestedMixinB struct {
	_ struct{} `mixin:"github.com/viant/tagmeta.contested" label:"b"`
}

type labelledTarget struct {
	Name string
}

type labelledCarrier struct {
	_    struct{} `mixin:"github.com/viant/tagmeta.labelledTarget" label:"carrier-direct" service:""`
	Name string   `label:"name-direct" service:""`
}

type serviceClass struct {
	_ struct{} `service:""`
	_ struct{} `label:"own"`
}

type serviceOnly struct {
	_ struct{} `service:""`
}

type cyclic struct {
	_ struct{} `loop1:""`
	_ struct{} `label:"cyclic"`
}

type lazy struct {
	_ struct{} `label:"lazy"`
	_ struct{} `service:""`
}

func testKinds() *kind.Registry {
	return kind.NewRegistry(
		kind.New("label", kind.WithAttribute("value", kind.Text)),
		kind.New("tag", kind.WithRepeatable(), kind.WithAttribute("n", kind.Number)),
		kind.New("service", kind.WithBundle(`label:"svc" tag:"n=9"`)),
		kind.New("loop1", kind.WithBundle(`loop2:""`)),
		kind.New("loop2", kind.WithBundle(`loop1:""`)),
	)
}

func newTestLoader(t *testing.T, opts ...Option) *Loader {
	types := index.NewTypes(
		reflect.TypeOf(someClass{}),
		reflect.TypeOf(targetMixin{}),
		reflect.TypeOf(contested{}),
		reflect.TypeOf(contestedMixinA{}),
		reflect.TypeOf(contestedMixinB{}),
		reflect.TypeOf(cyclic{}),
		reflect.TypeOf(labelledCarrier{}),
	)
	opts = append([]Option{WithTypes(types), WithKinds(testKinds()), WithLogger(logging.Nop())}, opts...)
	loader, err := New(context.Background(), opts...)
	require.NoError(t, err)
	return loader
}

func label(text string) *value.Value {
	return &value.Value{Kind: "label", Values: map[string]interface{}{"value": text}}
}

func tag(n int) *value.Value {
	return &value.Value{Kind: "tag", Values: map[string]interface{}{"n": n}}
}
