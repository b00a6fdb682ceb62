package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Messages(t *testing.T) {
	var testCases = []struct {
		description string
		err         error
		sentinel    error
		expect      string
	}{
		{
			description: "missing field",
			err:         &NotFoundError{Type: "example.com/shop.Order", Member: "field", Name: "unknown"},
			sentinel:    ErrNotFound,
			expect:      "no field 'unknown' in example.com/shop.Order",
		},
		{
			description: "missing method",
			err:         &NotFoundError{Type: "example.com/shop.Order", Member: "method", Name: "unknown", Params: []string{"string", "int"}},
			sentinel:    ErrNotFound,
			expect:      "no method unknown(string, int) in example.com/shop.Order",
		},
		{
			description: "missing type",
			err:         &NotFoundError{Type: "example.com/shop.Order"},
			sentinel:    ErrNotFound,
			expect:      "no type example.com/shop.Order",
		},
		{
			description: "conflicting sources",
			err:         &AmbiguousError{Kind: "label", Target: "example.com/shop.Order", Sources: []string{"mixin(a:direct#0)", "mixin(b:direct#0)"}},
			sentinel:    ErrAmbiguous,
			expect:      "the tag label is ambiguous on example.com/shop.Order: conflicting sources [mixin(a:direct#0), mixin(b:direct#0)]",
		},
		{
			description: "repeatable kind",
			err:         &AmbiguousError{Kind: "tag", Target: "example.com/shop.Order", Repeatable: true},
			sentinel:    ErrAmbiguous,
			expect:      "the tag tag is ambiguous on example.com/shop.Order: it is repeatable, query it with AllOf not Get",
		},
		{
			description: "malformed entry",
			err:         &MalformedEntryError{URL: "mem://localhost/index.yaml", Position: 2, Err: fmt.Errorf("type name was empty")},
			sentinel:    ErrMalformedEntry,
			expect:      "malformed snapshot entry #2 (?) in mem://localhost/index.yaml: type name was empty",
		},
		{
			description: "stereotype cycle",
			err:         &StereotypeCycleError{Chain: []string{"a", "b", "a"}, Target: "example.com/shop.Order"},
			sentinel:    ErrStereotypeCycle,
			expect:      "unresolvable stereotype cycle a -> b -> a on example.com/shop.Order",
		},
		{
			description: "stereotype depth",
			err:         &StereotypeCycleError{Chain: []string{"a", "b"}, Target: "example.com/shop.Order", Depth: true},
			sentinel:    ErrStereotypeCycle,
			expect:      "stereotype chain a -> b on example.com/shop.Order exceeds max depth",
		},
	}
	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, testCase.err.Error(), testCase.description)
		assert.True(t, errors.Is(testCase.err, testCase.sentinel), testCase.description)
		assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", testCase.err), testCase.sentinel), testCase.description)
	}
	assert.False(t, errors.Is(&NotFoundError{}, ErrAmbiguous))
}

func TestErrors_Collector(t *testing.T) {
	errs := NewErrors()
	assert.Nil(t, errs.Error())
	errs.Append(nil)
	first := errors.New("first")
	errs.Append(first)
	errs.Append(errors.New("second"))
	assert.Equal(t, first, errs.Error())
	collected := errs.Errors()
	assert.Len(t, collected, 2)
	collected[0] = nil
	assert.Equal(t, first, errs.Errors()[0])
}
