package deinflect

import (
	"slices"
	"strings"
	"testing"
)

func buildTable(t *testing.T, transforms ...TransformSpec) *Table {
	t.Helper()
	tbl, err := Build(LanguageSpec{Language: "test", Conditions: JapaneseConditions(), Transforms: transforms})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tbl
}

func findResult(results []Result, term string, reasons ...string) (Result, bool) {
	for _, r := range results {
		if r.Term == term && slices.Equal(r.Reasons, reasons) {
			return r, true
		}
	}
	return Result{}, false
}

func terms(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Term
	}
	return out
}

func TestIdentityResultFirst(t *testing.T) {
	tbl := buildTable(t, TransformSpec{Name: "-ta", Rules: []RuleSpec{SuffixInflection("た", "る", []string{"v1"}, []string{"-ta"})}})
	for _, word := range []string{"食べた", "食べる", ""} {
		res := tbl.Deinflect(word)
		if len(res) == 0 {
			t.Fatalf("Deinflect(%q) returned nothing", word)
		}
		first := res[0]
		if first.Term != word || len(first.Reasons) != 0 || first.Trace != nil || first.Conditions != 0 {
			t.Errorf("Deinflect(%q)[0] = %+v, want identity", word, first)
		}
	}
}

func TestDeinflectSimpleSuffix(t *testing.T) {
	tbl := buildTable(t, TransformSpec{Name: "-ta", Rules: []RuleSpec{SuffixInflection("た", "る", []string{"v1"}, []string{"-ta"})}})
	res := tbl.Deinflect("食べた")
	r, ok := findResult(res, "食べる", "-ta")
	if !ok {
		t.Fatalf("Deinflect(食べた) = %v, want 食べる via -ta", terms(res))
	}
	if want := mustFlags(t, tbl.Conditions(), "v1"); r.Conditions != want {
		t.Errorf("Conditions = %b, want %b", r.Conditions, want)
	}
	if len(r.Trace) != 1 || r.Trace[0] != (TraceFrame{Transform: "-ta", Rule: 0, Text: "食べた"}) {
		t.Errorf("Trace = %+v", r.Trace)
	}
}

func TestDeinflectWithConstraint(t *testing.T) {
	tbl := buildTable(t, TransformSpec{Name: "-ta", Rules: []RuleSpec{SuffixInflection("た", "る", []string{"v1"}, []string{"-ta"})}})
	ct := tbl.Conditions()

	res := tbl.DeinflectWith("食べた", mustFlags(t, ct, "adj-i"))
	if len(res) != 1 {
		t.Errorf("constrained to adj-i: %v, want identity only", terms(res))
	}
	res = tbl.DeinflectWith("食べた", mustFlags(t, ct, "-ta"))
	if _, ok := findResult(res, "食べる", "-ta"); !ok {
		t.Errorf("constrained to -ta: %v, want 食べる", terms(res))
	}
	if res[0].Conditions != mustFlags(t, ct, "-ta") {
		t.Errorf("identity result conditions = %b, want the constraint", res[0].Conditions)
	}
}

func TestConditionsPruneChains(t *testing.T) {
	tbl := buildTable(t,
		TransformSpec{Name: "-ta", Rules: []RuleSpec{SuffixInflection("かった", "い", []string{"adj-i"}, []string{"-ta"})}},
		TransformSpec{Name: "-te", Rules: []RuleSpec{SuffixInflection("い", "う", []string{"v5"}, []string{"-te"})}},
		TransformSpec{Name: "negative", Rules: []RuleSpec{SuffixInflection("ない", "る", []string{"v1"}, []string{"adj-i"})}},
	)
	res := tbl.Deinflect("しなかった")
	if _, ok := findResult(res, "しる", "-ta", "negative"); !ok {
		t.Errorf("missing chain -ta -> negative: %v", terms(res))
	}
	// "-te" consumes -te forms only; しない carries adj-i.
	for _, r := range res {
		if slices.Equal(r.Reasons, []string{"-ta", "-te"}) {
			t.Errorf("incompatible chain kept: %+v", r)
		}
	}
}

func TestSearchDepthIsBounded(t *testing.T) {
	tbl := buildTable(t, TransformSpec{Name: "grow", Rules: []RuleSpec{SuffixInflection("", "x", nil, nil)}})
	res := tbl.Deinflect("a")
	if len(res) != MaxDepth+1 {
		t.Fatalf("len(results) = %d, want %d", len(res), MaxDepth+1)
	}
	last := res[len(res)-1]
	if want := "a" + strings.Repeat("x", MaxDepth); last.Term != want || len(last.Reasons) != MaxDepth {
		t.Errorf("deepest result = %q with %d reasons", last.Term, len(last.Reasons))
	}
	for _, r := range res {
		if len(r.Trace) > MaxDepth {
			t.Errorf("result %q exceeds MaxDepth", r.Term)
		}
	}
}

func TestSearchResultsAreCapped(t *testing.T) {
	strip := SuffixInflection("x", "", nil, nil)
	tbl := buildTable(t,
		TransformSpec{Name: "one", Rules: []RuleSpec{strip}},
		TransformSpec{Name: "two", Rules: []RuleSpec{strip}},
	)
	res := tbl.Deinflect(strings.Repeat("x", 20))
	if len(res) != MaxResults {
		t.Errorf("len(results) = %d, want %d", len(res), MaxResults)
	}
	if res[0].Term != strings.Repeat("x", 20) || len(res[0].Reasons) != 0 {
		t.Errorf("first result = %+v, want identity", res[0])
	}
}

func TestPrefixRulesLeadTheChain(t *testing.T) {
	tbl := buildTable(t,
		TransformSpec{Name: "prefix", Rules: []RuleSpec{Inflection("お", "", nil, nil, Prefix)}},
		TransformSpec{Name: "-ta", Rules: []RuleSpec{SuffixInflection("た", "る", nil, nil)}},
	)
	res := tbl.Deinflect("おおたべた")
	want := []string{"おおたべた", "おおたべる", "おたべた", "おたべる", "たべた", "たべる"}
	got := terms(res)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("Deinflect(おおたべた) = %v, want %v", got, want)
	}
	for _, r := range res {
		suffixed := false
		for _, reason := range r.Reasons {
			if reason != "prefix" {
				suffixed = true
			} else if suffixed {
				t.Errorf("%q: prefix stripped after a suffix rule: %v", r.Term, r.Reasons)
			}
		}
	}
}

func TestSearchStopsOnCycles(t *testing.T) {
	tbl := buildTable(t,
		TransformSpec{Name: "a->b", Rules: []RuleSpec{SuffixInflection("a", "b", nil, nil)}},
		TransformSpec{Name: "b->a", Rules: []RuleSpec{SuffixInflection("b", "a", nil, nil)}},
	)
	res := tbl.Deinflect("xa")
	if got := terms(res); !slices.Equal(got, []string{"xa", "xb"}) {
		t.Errorf("Deinflect(xa) = %v, want [xa xb]", got)
	}
}

func TestDuplicatesKeepProvenance(t *testing.T) {
	rule := SuffixInflection("た", "る", []string{"v1"}, []string{"-ta"})
	tbl := buildTable(t,
		TransformSpec{Name: "one", Rules: []RuleSpec{rule}},
		TransformSpec{Name: "two", Rules: []RuleSpec{rule}},
	)
	res := tbl.Deinflect("食べた")
	_, one := findResult(res, "食べる", "one")
	_, two := findResult(res, "食べる", "two")
	if !one || !two || len(res) != 3 {
		t.Errorf("Deinflect(食べた) = %+v, want identity plus both chains", res)
	}
}

func TestIsDictionaryForm(t *testing.T) {
	tbl := buildTable(t,
		TransformSpec{Name: "-te", Rules: []RuleSpec{SuffixInflection("て", "る", []string{"v1"}, []string{"-te"})}},
		TransformSpec{Name: "-te iru", Rules: []RuleSpec{SuffixInflection("ている", "て", []string{"-te"}, []string{"v1"})}},
	)
	res := tbl.Deinflect("食べている")
	mid, ok := findResult(res, "食べて", "-te iru")
	if !ok {
		t.Fatalf("missing 食べて: %v", terms(res))
	}
	if tbl.IsDictionaryForm(mid) {
		t.Error("-te intermediate reported as dictionary form")
	}
	end, ok := findResult(res, "食べる", "-te iru", "-te")
	if !ok || !tbl.IsDictionaryForm(end) {
		t.Errorf("食べる result = %+v, %v", end, ok)
	}
	if !tbl.IsDictionaryForm(res[0]) {
		t.Error("identity result not a dictionary form candidate")
	}
}
