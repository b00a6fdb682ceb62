package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagmeta/index"
	"github.com/viant/tagmeta/kind"
	"github.com/viant/tagmeta/shared"
)

type account struct {
	_       struct{} `entity:""`
	_       struct{} `label:"account"`
	Balance float64  `label:"balance"`
	Owner   string
}

func (a *account) Deposit(amount float64) {}

func (a *account) Withdraw(amount float64) {}

type accountMixin struct {
	_       struct{} `mixin:"github.com/viant/tagmeta/resolver.account" label:"overlay" audited:""`
	Owner   string   `label:"owner"`
	Missing string   `label:"missing"`
}

func (m accountMixin) MethodTags() map[string]reflect.StructTag {
	return map[string]reflect.StructTag{
		"Deposit":          `label:"deposit"`,
		"Withdraw(string)": `label:"withdraw"`,
	}
}

type looped struct {
	_ struct{} `first:""`
	_ struct{} `label:"looped"`
}

type diamond struct {
	_ struct{} `outer:""`
	_ struct{} `entity:""`
}

func testKinds() *kind.Registry {
	return kind.NewRegistry(
		kind.New("label"),
		kind.New("audit", kind.WithRepeatable()),
		kind.New("entity", kind.WithBundle(`table:"accounts" audited:""`)),
		kind.New("audited", kind.WithDeclarations(
			&kind.Declaration{Kind: "audit", Values: map[string]interface{}{"value": "create"}},
			&kind.Declaration{Kind: "audit", Values: map[string]interface{}{"value": "update"}},
		)),
		kind.New("table"),
		kind.New("first", kind.WithBundle(`second:""`)),
		kind.New("second", kind.WithBundle(`first:""`)),
		kind.New("outer", kind.WithBundle(`entity:""`)),
	)
}

func instances(info index.Info) []string {
	var result []string
	for _, instance := range info.Instances() {
		result = append(result, instance.String())
	}
	return result
}

func TestStereotypes_Resolve(t *testing.T) {
	x := index.New(testKinds(), index.NewTypes(reflect.TypeOf(account{})))
	pipeline := New(testKinds(), 0, nil)
	pipeline.Resolve(x)

	info, ok := x.Lookup("github.com/viant/tagmeta/resolver.account")
	require.True(t, ok)
	var sources = map[index.Source]int{}
	for _, instance := range info.Instances() {
		sources[instance.Source]++
	}
	assert.Equal(t, map[index.Source]int{index.SourceDirect: 2, index.SourceStereotype: 4}, sources)
	table := info.Instance("table")
	require.NotNil(t, table)
	assert.Equal(t, "accounts", table.Values["value"])
	assert.Equal(t, "entity#0", table.Origin)
	assert.Equal(t, "entity#1", info.Instance("audited").Origin)
	assert.Empty(t, pipeline.Problems())
}

func TestStereotypes_Nested(t *testing.T) {
	kinds := testKinds()
	info := index.NewTypeInfo("example.com/shop.Order")
	info.Add(&index.Instance{Kind: "audited", Source: index.SourceDirect, Origin: "#0"})
	problems := shared.NewErrors()
	NewStereotypes(kinds, 0).ResolveType(info, problems)
	require.Len(t, info.Instances(), 3)
	assert.Equal(t, "audited#1", info.Instances()[2].Origin)
	assert.Equal(t, "update", info.Instances()[2].Values["value"])
	assert.Empty(t, problems.Errors())

	nested := index.NewTypeInfo("example.com/shop.Item")
	nested.Add(&index.Instance{Kind: "entity", Source: index.SourceDirect, Origin: "#0"})
	NewStereotypes(kinds, 0).ResolveType(nested, problems)
	var origins []string
	for _, instance := range nested.Instances() {
		origins = append(origins, instance.Origin)
	}
	assert.Equal(t, []string{"#0", "entity#0", "entity#1", "entity>audited#0", "entity>audited#1"}, origins)
}

func TestStereotypes_Cycle(t *testing.T) {
	var testCases = []struct {
		description string
		maxDepth    int
		expectChain []string
		expectDepth bool
	}{
		{description: "cycle", maxDepth: 0, expectChain: []string{"first", "second", "first"}},
		{description: "depth", maxDepth: 1, expectChain: []string{"first", "second"}, expectDepth: true},
	}
	for _, testCase := range testCases {
		x := index.New(testKinds(), index.NewTypes(reflect.TypeOf(looped{})))
		pipeline := New(testKinds(), testCase.maxDepth, nil)
		pipeline.Resolve(x)
		problems := pipeline.Problems()
		require.Len(t, problems, 1, testCase.description)
		assert.True(t, errors.Is(problems[0], shared.ErrStereotypeCycle), testCase.description)
		cycle := &shared.StereotypeCycleError{}
		require.True(t, errors.As(problems[0], &cycle), testCase.description)
		assert.EqualValues(t, testCase.expectChain, cycle.Chain, testCase.description)
		assert.EqualValues(t, testCase.expectDepth, cycle.Depth, testCase.description)
		assert.Equal(t, "github.com/viant/tagmeta/resolver.looped", cycle.Target, testCase.description)

		info, _ := x.Lookup("github.com/viant/tagmeta/resolver.looped")
		assert.NotNil(t, info.Instance("second"), testCase.description)
		assert.NotNil(t, info.Instance("label"), testCase.description)
	}
}

func TestMixins_Apply(t *testing.T) {
	x := index.New(testKinds(), index.NewTypes(reflect.TypeOf(account{}), reflect.TypeOf(accountMixin{})))
	New(testKinds(), 0, nil).Resolve(x)

	info, ok := x.Lookup("github.com/viant/tagmeta/resolver.account")
	require.True(t, ok)
	overlay := instancesOf(info, index.SourceMixin)
	assert.Contains(t, overlay, "label")
	assert.Contains(t, overlay, "audited")
	assert.Contains(t, overlay, "audit")

	owner, ok := info.Field("Owner")
	require.True(t, ok)
	require.Len(t, owner.Instances(), 1)
	assert.Equal(t, index.SourceMixin, owner.Instances()[0].Source)
	assert.Equal(t, "github.com/viant/tagmeta/resolver.accountMixin:direct(#0)", owner.Instances()[0].Origin)
	_, ok = info.Field("Missing")
	assert.False(t, ok)

	deposit, ok := info.Method("Deposit", "float64")
	require.True(t, ok)
	assert.Equal(t, "deposit", deposit.Instance("label").Values["value"])
	withdraw, ok := info.Method("Withdraw", "float64")
	require.True(t, ok)
	assert.Empty(t, withdraw.Instances())

	balance, _ := info.Field("Balance")
	assert.Len(t, balance.Instances(), 1)
}

func TestPipeline_Idempotent(t *testing.T) {
	x := index.New(testKinds(), index.NewTypes(reflect.TypeOf(account{}), reflect.TypeOf(accountMixin{})))
	pipeline := New(testKinds(), 0, nil)
	pipeline.Resolve(x)
	var first = map[string][]string{}
	for _, info := range x.Infos() {
		for _, element := range info.Elements() {
			first[element.Element().String()] = instances(element)
		}
	}
	pipeline.Resolve(x)
	for _, info := range x.Infos() {
		for _, element := range info.Elements() {
			assert.Equal(t, first[element.Element().String()], instances(element), element.Element().String())
		}
	}
}

func TestPipeline_Seal(t *testing.T) {
	x := index.New(testKinds(), index.NewTypes(reflect.TypeOf(accountMixin{})))
	pipeline := New(testKinds(), 0, nil)
	pipeline.Seal(x)

	info := x.TypeOf(reflect.TypeOf(account{}))
	require.True(t, info.Sealed())
	assert.NotNil(t, info.Instance("table"))
	assert.Contains(t, instancesOf(info, index.SourceMixin), "label")
	owner, _ := info.Field("Owner")
	assert.Len(t, owner.Instances(), 1)

	carrier, _ := x.Lookup("github.com/viant/tagmeta/resolver.accountMixin")
	assert.False(t, carrier.Add(&index.Instance{Kind: "label", Source: index.SourceDirect}))
}

func TestFallback_Stub(t *testing.T) {
	x := index.New(testKinds(), index.NewTypes(reflect.TypeOf(account{})))
	x.Apply(&index.Snapshot{Types: []*index.TypeEntry{
		{Name: "github.com/viant/tagmeta/resolver.account", Stub: true},
		{Name: "example.com/shop.Unknown", Stub: true},
	}})
	NewFallback(nil).Resolve(x)

	info, _ := x.Lookup("github.com/viant/tagmeta/resolver.account")
	assert.False(t, info.Stub)
	assert.Len(t, info.Instances(), 2)
	unknown, _ := x.Lookup("example.com/shop.Unknown")
	assert.True(t, unknown.Stub)
	assert.Len(t, x.Infos(), 2)
}

func instancesOf(info index.Info, source index.Source) []string {
	var result []string
	for _, instance := range info.Instances() {
		if instance.Source == source {
			result = append(result, instance.Kind)
		}
	}
	return result
}

func TestStereotypes_Diamond(t *testing.T) {
	x := index.New(testKinds(), index.NewTypes(reflect.TypeOf(diamond{})))
	pipeline := New(testKinds(), 0, nil)
	pipeline.Resolve(x)
	require.Empty(t, pipeline.Problems())

	info, ok := x.Lookup("github.com/viant/tagmeta/resolver.diamond")
	require.True(t, ok)
	var counts = map[string]int{}
	for _, instance := range info.Instances() {
		if instance.Source == index.SourceStereotype {
			counts[instance.Kind]++
		}
	}
	assert.Equal(t, map[string]int{"entity": 1, "table": 1, "audited": 1, "audit": 2}, counts)
	assert.Equal(t, "outer>entity#0", info.Instance("table").Origin)
}

func TestPipeline_ResolveProblems(t *testing.T) {
	x := index.New(testKinds(), index.NewTypes(reflect.TypeOf(looped{})))
	pipeline := New(testKinds(), 0, nil)
	pipeline.Resolve(x)
	pipeline.Resolve(x)
	assert.Len(t, pipeline.Problems(), 1)
}

func TestMixins_CarrierPrecedence(t *testing.T) {
	kinds := testKinds()
	carrier := index.NewTypeInfo("example.com/shop.OrderMixin")
	carrier.Add(&index.Instance{Kind: "label", Values: map[string]interface{}{"value": "direct"}, Source: index.SourceDirect, Origin: "#0"})
	carrier.Add(&index.Instance{Kind: "label", Values: map[string]interface{}{"value": "svc"}, Source: index.SourceStereotype, Origin: "entity#0"})
	carrier.Add(&index.Instance{Kind: "table", Values: map[string]interface{}{"value": "orders"}, Source: index.SourceStereotype, Origin: "entity#1"})
	carrier.Add(&index.Instance{Kind: "audit", Values: map[string]interface{}{"value": "a"}, Source: index.SourceDirect, Origin: "#1"})
	carrier.Add(&index.Instance{Kind: "audit", Values: map[string]interface{}{"value": "b"}, Source: index.SourceStereotype, Origin: "entity#2"})
	target := index.NewTypeInfo("example.com/shop.Order")

	NewMixins(kinds, nil).Apply(carrier, target)
	var actual []string
	for _, instance := range target.Instances() {
		assert.Equal(t, index.SourceMixin, instance.Source)
		actual = append(actual, instance.Kind+" "+instance.Origin)
	}
	assert.Equal(t, []string{
		"label example.com/shop.OrderMixin:direct(#0)",
		"table example.com/shop.OrderMixin:stereotype(entity#1)",
		"audit example.com/shop.OrderMixin:direct(#1)",
		"audit example.com/shop.OrderMixin:stereotype(entity#2)",
	}, actual)
}
