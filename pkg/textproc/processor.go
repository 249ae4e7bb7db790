// Package textproc is a framework of parameterized text processors.
//
// A processor is an immutable descriptor binding an identifier, a
// human-readable description, a finite ordered option domain and a pure
// transform of (text, option). Processors are composed into pipelines by the
// caller; the framework never reorders them.
package textproc

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidOption is the sentinel wrapped by every option domain violation.
var ErrInvalidOption = errors.New("textproc: option not in processor domain")

// ErrUnknownProcessor is returned when a processor id is not registered.
var ErrUnknownProcessor = errors.New("textproc: unknown processor")

// OptionError reports an option outside a processor's declared domain.
type OptionError struct {
	Processor string
	Option    string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("textproc: processor %q does not accept option %q", e.Processor, e.Option)
}

func (e *OptionError) Unwrap() error { return ErrInvalidOption }

// Processor describes one text transform. Options[0] is the identity
// setting for binary and bidirectional processors. Process must be pure and
// total over its option domain.
type Processor[T comparable] struct {
	ID          string
	Name        string
	Description string
	Options     []T
	Process     func(text string, opt T) string
}

// Accepts reports whether opt is one of the processor's options.
func (p Processor[T]) Accepts(opt T) bool {
	return slices.Contains(p.Options, opt)
}

// Apply runs the processor. An option outside the domain is a programming
// error and panics with an *OptionError; use Accepts or Bind to validate
// untrusted settings first.
func (p Processor[T]) Apply(text string, opt T) string {
	if !p.Accepts(opt) {
		panic(&OptionError{Processor: p.ID, Option: optionName(opt)})
	}
	return p.Process(text, opt)
}

// Info is the type-erased description of a processor.
type Info struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

// Descriptor is a processor with its option type erased, so processors of
// different option types can share one list.
type Descriptor interface {
	Info() Info
	// Bind resolves an option by name. Unknown names are an error, never
	// coerced to a default.
	Bind(option string) (Stage, error)
	// Stages returns one stage per option, in option order.
	Stages() []Stage
}

func (p Processor[T]) Info() Info {
	names := make([]string, len(p.Options))
	for i, o := range p.Options {
		names[i] = optionName(o)
	}
	return Info{ID: p.ID, Name: p.Name, Description: p.Description, Options: names}
}

func (p Processor[T]) Bind(option string) (Stage, error) {
	for _, o := range p.Options {
		if optionName(o) == option {
			return p.stage(o), nil
		}
	}
	return Stage{}, &OptionError{Processor: p.ID, Option: option}
}

func (p Processor[T]) Stages() []Stage {
	out := make([]Stage, len(p.Options))
	for i, o := range p.Options {
		out[i] = p.stage(o)
	}
	return out
}

func (p Processor[T]) stage(opt T) Stage {
	return Stage{
		Processor: p.ID,
		Option:    optionName(opt),
		fn:        func(text string) string { return p.Process(text, opt) },
	}
}

func optionName[T any](opt T) string { return fmt.Sprint(opt) }

// Stage is a processor bound to one of its options.
type Stage struct {
	Processor string
	Option    string
	fn        func(string) string
}

// Run applies the stage. The zero Stage is the identity.
func (s Stage) Run(text string) string {
	if s.fn == nil {
		return text
	}
	return s.fn(text)
}

// Config returns the (processor, option) pair that rebuilds s.
func (s Stage) Config() StageConfig {
	return StageConfig{Processor: s.Processor, Option: s.Option}
}
