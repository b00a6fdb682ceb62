package kind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/tagly/tags"
)

// Parse splits struct tag into declarations preserving declaration order,
// positional value is stored under DefaultAttribute.
func Parse(tag reflect.StructTag) ([]*Declaration, error) {
	if strings.TrimSpace(string(tag)) == "" {
		return nil, nil
	}
	var result []*Declaration
	for _, aTag := range tags.NewTags(string(tag)) {
		if aTag == nil || aTag.Name == "" {
			continue
		}
		values, err := ParseValues(string(aTag.Values))
		if err != nil {
			return nil, fmt.Errorf("invalid %v tag: %w", aTag.Name, err)
		}
		result = append(result, &Declaration{Kind: aTag.Name, Values: values})
	}
	return result, nil
}

// ParseValues parses comma separated tag values, i.e. "x,lang=en"
func ParseValues(text string) (map[string]interface{}, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	result := map[string]interface{}{}
	position := 0
	err := tags.Values(text).Match(func(item string) error {
		item = strings.TrimSpace(item)
		defer func() { position++ }()
		if item == "" {
			return nil
		}
		index := strings.Index(item, "=")
		if index == -1 {
			if position != 0 {
				return fmt.Errorf("positional value %q has to be first", item)
			}
			result[DefaultAttribute] = item
			return nil
		}
		key := strings.TrimSpace(item[:index])
		if key == "" {
			return fmt.Errorf("empty attribute name in %q", item)
		}
		result[key] = strings.Trim(strings.TrimSpace(item[index+1:]), "'")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
