package deinflect

import (
	"errors"
	"testing"
)

func TestRuleDeinflect(t *testing.T) {
	ct := mustConditions(t)
	tests := []struct {
		name string
		spec RuleSpec
		word string
		want string
		ok   bool
	}{
		{"suffix", SuffixInflection("た", "る", []string{"v1"}, []string{"-ta"}), "食べた", "食べる", true},
		{"suffix no match", SuffixInflection("た", "る", nil, nil), "食べる", "", false},
		{"suffix alternation", SuffixInflection("[かが]った", "", nil, nil), "よかった", "よ", true},
		{"prefix", Inflection("[おご御]", "", nil, nil, Prefix), "お茶", "茶", true},
		{"prefix only at start", Inflection("お", "", nil, nil, Prefix), "茶お", "", false},
		{"whole word", Inflection("ない", "ある", []string{"v5"}, []string{"adj-i"}, WholeWord), "ない", "ある", true},
		{"whole word rejects suffix", Inflection("ない", "ある", nil, nil, WholeWord), "しない", "", false},
		{"custom", CustomInflection("[かがさたなばまらわ]ず$", aRowToURow("ず"), nil, nil), "読まず", "読む", true},
		{"custom declines", CustomInflection("ず$", aRowToURow("ず"), nil, nil), "食べず", "", false},
		{"lookaround", SuffixInflection("(?<!ら)れる", "る", nil, nil).WithLookaround(), "取れる", "取る", true},
		{"lookaround blocks", SuffixInflection("(?<!ら)れる", "る", nil, nil).WithLookaround(), "食べられる", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRule(tt.spec, ct)
			if err != nil {
				t.Fatalf("NewRule: %v", err)
			}
			got, ok := r.Deinflect(tt.word)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Deinflect(%q) = %q, %v, want %q, %v", tt.word, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRuleRewriteStrategy(t *testing.T) {
	ct := mustConditions(t)
	tests := []struct {
		spec RuleSpec
		want Rewrite
	}{
		{SuffixInflection("た", "る", nil, nil), RewriteSuffix},
		{Inflection("お", "", nil, nil, Prefix), RewritePrefix},
		{Inflection("こい", "くる", nil, nil, WholeWord), RewriteWholeWord},
		{CustomInflection("ず$", aRowToURow("ず"), nil, nil), RewriteCustom},
	}
	for _, tt := range tests {
		r, err := NewRule(tt.spec, ct)
		if err != nil {
			t.Fatalf("NewRule(%q): %v", tt.spec.Inflected, err)
		}
		if r.Rewrite() != tt.want {
			t.Errorf("NewRule(%q).Rewrite() = %v, want %v", tt.spec.Inflected, r.Rewrite(), tt.want)
		}
	}
}

func TestRuleAnchoring(t *testing.T) {
	ct := mustConditions(t)
	tests := []struct {
		spec RuleSpec
		want string
	}{
		{SuffixInflection("た|だ", "る", nil, nil), "(?:た|だ)$"},
		{Inflection("お|ご", "", nil, nil, Prefix), "^(?:お|ご)"},
		{Inflection("こい", "くる", nil, nil, WholeWord), "^(?:こい)$"},
		{CustomInflection("ず$", aRowToURow("ず"), nil, nil), "ず$"},
	}
	for _, tt := range tests {
		r, err := NewRule(tt.spec, ct)
		if err != nil {
			t.Fatalf("NewRule: %v", err)
		}
		if r.Pattern() != tt.want {
			t.Errorf("Pattern() = %q, want %q", r.Pattern(), tt.want)
		}
	}
}

func TestNewRuleErrors(t *testing.T) {
	ct := mustConditions(t)
	tests := []struct {
		name string
		spec RuleSpec
		want error
	}{
		{"other without custom", Inflection("x", "y", nil, nil, Other), ErrUnsupportedRuleType},
		{"out of range type", Inflection("x", "y", nil, nil, RuleType(42)), ErrUnsupportedRuleType},
		{"bad pattern", SuffixInflection("(", "", nil, nil), ErrBadPattern},
		{"bad lookaround pattern", SuffixInflection("(?<!", "", nil, nil).WithLookaround(), ErrBadPattern},
		{"lookaround on fast path", SuffixInflection("(?<!ら)れる", "る", nil, nil), ErrBadPattern},
		{"unknown condition in", SuffixInflection("た", "る", []string{"v9"}, nil), ErrUnknownCondition},
		{"unknown condition out", SuffixInflection("た", "る", nil, []string{"-zz"}), ErrUnknownCondition},
		{"unregistered custom", RuleSpec{Type: Other, Inflected: "x$", CustomName: "nope"}, ErrMissingCustom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRule(tt.spec, ct); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildReportsEveryBrokenRule(t *testing.T) {
	_, err := Build(LanguageSpec{
		Language:   "test",
		Conditions: JapaneseConditions(),
		Transforms: []TransformSpec{{
			Name: "broken",
			Rules: []RuleSpec{
				SuffixInflection("た", "る", nil, nil),
				SuffixInflection("(", "", nil, nil),
				Inflection("x", "y", nil, nil, Other),
			},
		}},
	})
	if err == nil {
		t.Fatal("Build succeeded with broken rules")
	}
	if !errors.Is(err, ErrBadPattern) || !errors.Is(err, ErrUnsupportedRuleType) {
		t.Errorf("err = %v, want both ErrBadPattern and ErrUnsupportedRuleType", err)
	}
	var re *RuleError
	if !errors.As(err, &re) || re.Transform != "broken" || re.Index != 1 {
		t.Errorf("RuleError = %+v", re)
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBuild did not panic")
		}
	}()
	MustBuild(LanguageSpec{Transforms: []TransformSpec{{Name: "x", Rules: []RuleSpec{SuffixInflection("(", "", nil, nil)}}}})
}

func TestParseRuleType(t *testing.T) {
	for _, rt := range []RuleType{Suffix, Prefix, WholeWord, Other} {
		got, err := ParseRuleType(rt.String())
		if err != nil || got != rt {
			t.Errorf("ParseRuleType(%q) = %v, %v", rt.String(), got, err)
		}
	}
	if _, err := ParseRuleType("sideways"); !errors.Is(err, ErrUnsupportedRuleType) {
		t.Errorf("ParseRuleType(sideways) err = %v", err)
	}
}

func TestRuneOffset(t *testing.T) {
	s := "食べaる"
	tests := []struct{ n, want int }{{0, 0}, {1, 3}, {3, 7}, {4, 10}, {9, 10}}
	for _, tt := range tests {
		if got := runeOffset(s, tt.n); got != tt.want {
			t.Errorf("runeOffset(%q, %d) = %d, want %d", s, tt.n, got, tt.want)
		}
	}
}
