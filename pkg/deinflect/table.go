package deinflect

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// TransformSpec groups the rules of one grammatical transform. Name is what
// a search result reports as the reason.
type TransformSpec struct {
	Name        string
	Description string
	Rules       []RuleSpec
}

// LanguageSpec is the declarative input of Build.
type LanguageSpec struct {
	Language   string
	Conditions []ConditionDef
	Transforms []TransformSpec
}

// Extend layers other over s. Conditions with a new tag are appended and
// ones with an existing tag replace the old declaration. Rules of a
// transform that already exists are appended to it; new transforms go last.
func (s LanguageSpec) Extend(other LanguageSpec) LanguageSpec {
	out := LanguageSpec{
		Language:   s.Language,
		Conditions: slices.Clone(s.Conditions),
		Transforms: make([]TransformSpec, len(s.Transforms)),
	}
	if other.Language != "" {
		out.Language = other.Language
	}
	for i, t := range s.Transforms {
		t.Rules = slices.Clone(t.Rules)
		out.Transforms[i] = t
	}
	for _, c := range other.Conditions {
		i := slices.IndexFunc(out.Conditions, func(d ConditionDef) bool { return d.Tag == c.Tag })
		if i >= 0 {
			out.Conditions[i] = c
			continue
		}
		out.Conditions = append(out.Conditions, c)
	}
	for _, t := range other.Transforms {
		i := slices.IndexFunc(out.Transforms, func(x TransformSpec) bool { return x.Name == t.Name })
		if i < 0 {
			out.Transforms = append(out.Transforms, t)
			continue
		}
		if t.Description != "" {
			out.Transforms[i].Description = t.Description
		}
		out.Transforms[i].Rules = append(out.Transforms[i].Rules, t.Rules...)
	}
	return out
}

// Transform is a compiled group of rules.
type Transform struct {
	Name        string
	Description string
	Rules       []*Rule

	// heuristic is the union of every rule pattern, nil when a rule needs
	// lookaround.
	heuristic *regexp.Regexp
}

// mayMatch is a cheap pre-check before trying rules one by one.
func (t *Transform) mayMatch(word string) bool {
	return t.heuristic == nil || t.heuristic.MatchString(word)
}

// Table is a built, immutable rule table.
type Table struct {
	language   string
	conditions *ConditionTable
	transforms []*Transform
	byType     map[RuleType][]*Rule
}

// Build compiles spec. Every broken condition or rule is reported in the
// returned error; a table is only returned when all of them compile.
func Build(spec LanguageSpec) (*Table, error) {
	ct, err := NewConditionTable(spec.Conditions)
	if err != nil {
		return nil, fmt.Errorf("build %s conditions: %w", spec.Language, err)
	}
	t := &Table{
		language:   spec.Language,
		conditions: ct,
		transforms: make([]*Transform, 0, len(spec.Transforms)),
		byType:     make(map[RuleType][]*Rule),
	}
	var errs []error
	for _, ts := range spec.Transforms {
		tr := &Transform{Name: ts.Name, Description: ts.Description, Rules: make([]*Rule, 0, len(ts.Rules))}
		fast := true
		sources := make([]string, 0, len(ts.Rules))
		for i, rs := range ts.Rules {
			r, err := NewRule(rs, ct)
			if err != nil {
				errs = append(errs, &RuleError{Transform: ts.Name, Index: i, Pattern: rs.Inflected, Err: err})
				continue
			}
			tr.Rules = append(tr.Rules, r)
			t.byType[r.Type] = append(t.byType[r.Type], r)
			if r.Lookaround() {
				fast = false
			}
			sources = append(sources, "(?:"+r.Pattern()+")")
		}
		if fast && len(sources) > 0 {
			tr.heuristic, err = regexp.Compile(strings.Join(sources, "|"))
			if err != nil {
				errs = append(errs, fmt.Errorf("transform %q heuristic: %w", ts.Name, err))
			}
		}
		t.transforms = append(t.transforms, tr)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("build %s rule table: %w", spec.Language, errors.Join(errs...))
	}
	return t, nil
}

// MustBuild is Build for static tables. It panics on error.
func MustBuild(spec LanguageSpec) *Table {
	t, err := Build(spec)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Language() string { return t.language }
func (t *Table) Conditions() *ConditionTable { return t.conditions }
func (t *Table) Transforms() []*Transform { return t.transforms }
func (t *Table) RulesOfType(rt RuleType) []*Rule { return t.byType[rt] }

// RuleCount returns the number of compiled rules.
func (t *Table) RuleCount() int {
	n := 0
	for _, tr := range t.transforms {
		n += len(tr.Rules)
	}
	return n
}
