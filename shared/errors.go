package shared

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrNotFound        = errors.New("tagmeta: element not found")
	ErrAmbiguous       = errors.New("tagmeta: ambiguous tag resolution")
	ErrMalformedEntry  = errors.New("tagmeta: malformed snapshot entry")
	ErrStereotypeCycle = errors.New("tagmeta: unresolvable stereotype cycle")
)

type (
	// NotFoundError reports a field or method that the owning type does not declare.
	NotFoundError struct {
		Type   string
		Member string // field or method
		Name   string
		Params []string
	}

	// AmbiguousError reports a Get that precedence could not narrow down to one instance.
	AmbiguousError struct {
		Kind       string
		Target     string
		Sources    []string
		Repeatable bool
	}

	// MalformedEntryError reports a snapshot entry that was skipped during loading.
	MalformedEntryError struct {
		URL      string
		Position int
		Name     string
		Err      error
	}

	// StereotypeCycleError reports a stereotype chain revisiting one of its members.
	StereotypeCycleError struct {
		Chain  []string
		Target string
		Depth  bool // depth limit reached rather than a revisit
	}
)

func (e *NotFoundError) Error() string {
	if e.Member == "method" {
		return fmt.Sprintf("no method %v(%v) in %v", e.Name, strings.Join(e.Params, ", "), e.Type)
	}
	if e.Member == "" {
		return fmt.Sprintf("no type %v", e.Type)
	}
	return fmt.Sprintf("no %v '%v' in %v", e.Member, e.Name, e.Type)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *AmbiguousError) Error() string {
	target := e.Target
	if target == "" {
		target = "unknown target"
	}
	if e.Repeatable {
		return fmt.Sprintf("the tag %v is ambiguous on %v: it is repeatable, query it with AllOf not Get", e.Kind, target)
	}
	return fmt.Sprintf("the tag %v is ambiguous on %v: conflicting sources [%v]", e.Kind, target, strings.Join(e.Sources, ", "))
}

func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

func (e *MalformedEntryError) Error() string {
	name := e.Name
	if name == "" {
		name = "?"
	}
	return fmt.Sprintf("malformed snapshot entry #%v (%v) in %v: %v", e.Position, name, e.URL, e.Err)
}

func (e *MalformedEntryError) Is(target error) bool {
	return target == ErrMalformedEntry
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}

func (e *StereotypeCycleError) Error() string {
	chain := strings.Join(e.Chain, " -> ")
	if e.Depth {
		return fmt.Sprintf("stereotype chain %v on %v exceeds max depth", chain, e.Target)
	}
	return fmt.Sprintf("unresolvable stereotype cycle %v on %v", chain, e.Target)
}

func (e *StereotypeCycleError) Is(target error) bool {
	return target == ErrStereotypeCycle
}

// Errors collect errors, supports parallel errors collecting.
type Errors struct {
	locker sync.Mutex
	errors []error
}

// NewErrors creates errors collector
func NewErrors() *Errors {
	return &Errors{}
}

// Append appends error.
func (r *Errors) Append(err error) {
	if err == nil {
		return
	}
	r.locker.Lock()
	defer r.locker.Unlock()
	r.errors = append(r.errors, err)
}

// Reset drops collected errors
func (r *Errors) Reset() {
	r.locker.Lock()
	defer r.locker.Unlock()
	r.errors = nil
}

// Errors returns a copy of collected errors
func (r *Errors) Errors() []error {
	r.locker.Lock()
	defer r.locker.Unlock()
	return append([]error{}, r.errors...)
}

// Error returns first encounter error if any
func (r *Errors) Error() error {
	r.locker.Lock()
	defer r.locker.Unlock()
	if len(r.errors) == 0 {
		return nil
	}
	return r.errors[0]
}
