package resolver

import "github.com/viant/tagmeta/index"

// Target represents mutable indexed element
type Target interface {
	index.Info
	Add(instance *index.Instance) bool
}
