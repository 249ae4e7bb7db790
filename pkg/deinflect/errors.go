package deinflect

import (
	"errors"
	"fmt"
)

var (
	ErrBadPattern          = errors.New("deinflect: pattern does not compile")
	ErrUnsupportedRuleType = errors.New("deinflect: unsupported rule type")
	ErrMissingCustom       = errors.New("deinflect: custom rewrite not registered")
	ErrUnknownCondition    = errors.New("deinflect: unknown condition")
	ErrDuplicateCondition  = errors.New("deinflect: duplicate condition")
	ErrConditionCycle      = errors.New("deinflect: condition cycle")
	ErrTooManyConditions   = errors.New("deinflect: more than 64 leaf conditions")
)

// RuleError locates a rule that failed to build.
type RuleError struct {
	Transform string
	Index     int
	Pattern   string
	Err       error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("transform %q rule %d (%s): %v", e.Transform, e.Index, e.Pattern, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }
