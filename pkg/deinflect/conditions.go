// Package deinflect reconstructs dictionary forms from inflected words.
//
// A Table holds ordered transforms of compiled rules. Each rule rewrites an
// inflected surface form into a candidate base form and carries two
// condition sets: the grammatical categories of the form it produces
// (ConditionsIn) and of the form it consumes (ConditionsOut). The search
// chains rules depth-first while the conditions stay compatible.
//
// Tables are immutable once built and safe for concurrent use.
package deinflect

import (
	"fmt"
	"math/bits"
	"strings"
)

// Conditions is a bit set over a language's condition universe. The zero
// value is unconstrained.
type Conditions uint64

// Compatible reports whether a and b share a category. An unconstrained
// side is compatible with everything.
func Compatible(a, b Conditions) bool {
	return a == 0 || b == 0 || a&b != 0
}

// Count returns the number of leaf categories in c.
func (c Conditions) Count() int { return bits.OnesCount64(uint64(c)) }

// ConditionDef declares one condition tag. A tag with sub-conditions stands
// for the union of its children and gets no bit of its own.
type ConditionDef struct {
	Tag            string   `json:"tag"`
	Name           string   `json:"name"`
	DictionaryForm bool     `json:"dictionary_form,omitempty"`
	SubConditions  []string `json:"sub_conditions,omitempty"`
}

// ConditionTable resolves tags to bits for one language.
type ConditionTable struct {
	defs   []ConditionDef
	flags  map[string]Conditions
	leaves []string
	dict   Conditions
}

// NewConditionTable assigns one bit per leaf tag in declaration order and
// resolves parent tags recursively.
func NewConditionTable(defs []ConditionDef) (*ConditionTable, error) {
	byTag := make(map[string]ConditionDef, len(defs))
	ct := &ConditionTable{defs: defs, flags: make(map[string]Conditions, len(defs))}
	for _, d := range defs {
		if d.Tag == "" {
			return nil, fmt.Errorf("condition with empty tag: %w", ErrUnknownCondition)
		}
		if _, dup := byTag[d.Tag]; dup {
			return nil, fmt.Errorf("condition %q: %w", d.Tag, ErrDuplicateCondition)
		}
		byTag[d.Tag] = d
		if len(d.SubConditions) == 0 {
			if len(ct.leaves) == 64 {
				return nil, fmt.Errorf("condition %q: %w", d.Tag, ErrTooManyConditions)
			}
			ct.flags[d.Tag] = 1 << len(ct.leaves)
			ct.leaves = append(ct.leaves, d.Tag)
		}
	}

	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(defs))
	var resolve func(tag string) (Conditions, error)
	resolve = func(tag string) (Conditions, error) {
		d, ok := byTag[tag]
		if !ok {
			return 0, fmt.Errorf("condition %q: %w", tag, ErrUnknownCondition)
		}
		switch state[tag] {
		case done:
			return ct.flags[tag], nil
		case visiting:
			return 0, fmt.Errorf("condition %q: %w", tag, ErrConditionCycle)
		}
		if len(d.SubConditions) == 0 {
			state[tag] = done
			return ct.flags[tag], nil
		}
		state[tag] = visiting
		var c Conditions
		for _, sub := range d.SubConditions {
			f, err := resolve(sub)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", tag, err)
			}
			c |= f
		}
		state[tag] = done
		ct.flags[tag] = c
		return c, nil
	}
	for _, d := range defs {
		c, err := resolve(d.Tag)
		if err != nil {
			return nil, err
		}
		if d.DictionaryForm {
			ct.dict |= c
		}
	}
	return ct, nil
}

// Flags ORs the bits of tags. An unknown tag is an error.
func (ct *ConditionTable) Flags(tags []string) (Conditions, error) {
	var c Conditions
	for _, t := range tags {
		f, ok := ct.flags[t]
		if !ok {
			return 0, fmt.Errorf("condition %q: %w", t, ErrUnknownCondition)
		}
		c |= f
	}
	return c, nil
}

// FlagsLenient is Flags that skips unknown tags. Dictionary part-of-speech
// lists mix rule tags with tags no rule mentions.
func (ct *ConditionTable) FlagsLenient(tags []string) Conditions {
	var c Conditions
	for _, t := range tags {
		c |= ct.flags[t]
	}
	return c
}

// Tags lists the leaf tags set in c, in declaration order.
func (ct *ConditionTable) Tags(c Conditions) []string {
	var out []string
	for i, tag := range ct.leaves {
		if c&(1<<i) != 0 {
			out = append(out, tag)
		}
	}
	return out
}

// Format renders c as a space separated tag list.
func (ct *ConditionTable) Format(c Conditions) string {
	return strings.Join(ct.Tags(c), " ")
}

// DictionaryForms is the union of the categories marked as dictionary forms.
func (ct *ConditionTable) DictionaryForms() Conditions { return ct.dict }

// Defs returns the declarations the table was built from.
func (ct *ConditionTable) Defs() []ConditionDef { return ct.defs }
