package deinflect

import (
	"fmt"
	"strings"
)

// RuleType selects how a rule's pattern is anchored and rewritten.
type RuleType int

const (
	Suffix RuleType = iota
	Prefix
	WholeWord
	// Other is only valid for rules with a custom rewrite.
	Other
)

func (t RuleType) String() string {
	switch t {
	case Suffix:
		return "suffix"
	case Prefix:
		return "prefix"
	case WholeWord:
		return "whole-word"
	case Other:
		return "other"
	}
	return fmt.Sprintf("RuleType(%d)", int(t))
}

// ParseRuleType is the inverse of RuleType.String.
func ParseRuleType(s string) (RuleType, error) {
	switch strings.ToLower(s) {
	case "", "suffix":
		return Suffix, nil
	case "prefix":
		return Prefix, nil
	case "whole-word", "wholeword", "whole_word":
		return WholeWord, nil
	case "other", "custom":
		return Other, nil
	}
	return 0, fmt.Errorf("rule type %q: %w", s, ErrUnsupportedRuleType)
}

// Rewrite is the strategy a rule uses to produce its candidate.
type Rewrite int

const (
	RewriteSuffix Rewrite = iota
	RewritePrefix
	RewriteWholeWord
	RewriteCustom
)

func (r Rewrite) String() string {
	switch r {
	case RewriteSuffix:
		return "suffix"
	case RewritePrefix:
		return "prefix"
	case RewriteWholeWord:
		return "whole-word"
	case RewriteCustom:
		return "custom"
	}
	return fmt.Sprintf("Rewrite(%d)", int(r))
}

// DeinflectFunc rewrites an irregular inflected word into its base form.
// An empty return means the word does not apply.
type DeinflectFunc func(word string) string

// RuleSpec is a rule literal. Inflected is a regular expression fragment;
// escaping literal text is the author's job.
type RuleSpec struct {
	Type        RuleType
	Inflected   string
	Deinflected string
	// ConditionsIn lists the categories of the deinflected form.
	ConditionsIn []string
	// ConditionsOut lists the categories of the inflected form.
	ConditionsOut []string
	Lookaround    bool
	Custom        DeinflectFunc
	// CustomName resolves Custom through CustomFuncs when Custom is nil.
	CustomName string
}

// SuffixInflection declares a rule that replaces an inflected ending.
func SuffixInflection(inflected, deinflected string, in, out []string) RuleSpec {
	return RuleSpec{Type: Suffix, Inflected: inflected, Deinflected: deinflected, ConditionsIn: in, ConditionsOut: out}
}

// Inflection declares a prefix, suffix or whole word rule. Any other type
// fails when the table is built.
func Inflection(inflected, deinflected string, in, out []string, t RuleType) RuleSpec {
	return RuleSpec{Type: t, Inflected: inflected, Deinflected: deinflected, ConditionsIn: in, ConditionsOut: out}
}

// CustomInflection declares a rule whose rewrite is fn. The pattern is used
// as written, without anchoring.
func CustomInflection(pattern string, fn DeinflectFunc, in, out []string) RuleSpec {
	return RuleSpec{Type: Other, Inflected: pattern, Custom: fn, ConditionsIn: in, ConditionsOut: out}
}

// WithLookaround compiles the rule with the lookaround-capable engine.
func (s RuleSpec) WithLookaround() RuleSpec {
	s.Lookaround = true
	return s
}

// Rule is a compiled, immutable deinflection rule.
type Rule struct {
	Type          RuleType
	Inflected     string
	Deinflected   string
	ConditionsIn  Conditions
	ConditionsOut Conditions

	rewrite Rewrite
	custom  DeinflectFunc
	matcher Matcher
	anchor  string
}

// NewRule compiles spec against a condition table.
func NewRule(spec RuleSpec, ct *ConditionTable) (*Rule, error) {
	custom := spec.Custom
	if custom == nil && spec.CustomName != "" {
		fn, ok := CustomFuncs[spec.CustomName]
		if !ok {
			return nil, fmt.Errorf("%q: %w", spec.CustomName, ErrMissingCustom)
		}
		custom = fn
	}

	var anchored string
	rewrite := RewriteCustom
	switch spec.Type {
	case Suffix:
		anchored, rewrite = "(?:"+spec.Inflected+")$", RewriteSuffix
	case Prefix:
		anchored, rewrite = "^(?:"+spec.Inflected+")", RewritePrefix
	case WholeWord:
		anchored, rewrite = "^(?:"+spec.Inflected+")$", RewriteWholeWord
	case Other:
		if custom == nil {
			return nil, fmt.Errorf("%s rule without custom rewrite: %w", spec.Type, ErrUnsupportedRuleType)
		}
		anchored = spec.Inflected
	default:
		return nil, fmt.Errorf("%s: %w", spec.Type, ErrUnsupportedRuleType)
	}
	if custom != nil {
		rewrite = RewriteCustom
	}

	in, err := ct.Flags(spec.ConditionsIn)
	if err != nil {
		return nil, err
	}
	out, err := ct.Flags(spec.ConditionsOut)
	if err != nil {
		return nil, err
	}
	m, err := compilePattern(anchored, spec.Lookaround)
	if err != nil {
		return nil, err
	}
	return &Rule{
		Type:          spec.Type,
		Inflected:     spec.Inflected,
		Deinflected:   spec.Deinflected,
		ConditionsIn:  in,
		ConditionsOut: out,
		rewrite:       rewrite,
		custom:        custom,
		matcher:       m,
		anchor:        anchored,
	}, nil
}

// Rewrite returns the rule's rewrite strategy.
func (r *Rule) Rewrite() Rewrite { return r.rewrite }

// Pattern returns the anchored pattern source.
func (r *Rule) Pattern() string { return r.anchor }

// Lookaround reports whether the rule runs on the lookaround engine.
func (r *Rule) Lookaround() bool {
	_, ok := r.matcher.(lookaroundMatcher)
	return ok
}

// Matches reports whether word has this rule's inflected form.
func (r *Rule) Matches(word string) bool {
	_, _, ok := r.matcher.FindIndex(word)
	return ok
}

// Deinflect applies the rule to word. It reports false when the pattern
// does not match.
func (r *Rule) Deinflect(word string) (string, bool) {
	start, end, ok := r.matcher.FindIndex(word)
	if !ok {
		return "", false
	}
	switch r.rewrite {
	case RewriteSuffix:
		return word[:start] + r.Deinflected, true
	case RewritePrefix:
		return r.Deinflected + word[end:], true
	case RewriteWholeWord:
		return r.Deinflected, true
	case RewriteCustom:
		out := r.custom(word)
		return out, out != ""
	}
	return "", false
}
