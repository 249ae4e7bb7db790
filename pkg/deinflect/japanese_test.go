package deinflect

import (
	"regexp"
	"strings"
	"sync"
	"testing"
)

func TestJapaneseBuilds(t *testing.T) {
	tbl := Japanese()
	if tbl != Japanese() {
		t.Error("Japanese() built twice")
	}
	if tbl.Language() != "ja" {
		t.Errorf("Language() = %q", tbl.Language())
	}
	if len(tbl.Transforms()) != 29 {
		t.Errorf("len(Transforms()) = %d, want 29", len(tbl.Transforms()))
	}
	for _, rt := range []RuleType{Suffix, Prefix, WholeWord, Other} {
		if len(tbl.RulesOfType(rt)) == 0 {
			t.Errorf("no %v rules", rt)
		}
	}
}

func TestJapaneseScenarios(t *testing.T) {
	tests := []struct {
		word    string
		term    string
		reasons []string
	}{
		{"食べた", "食べる", []string{"-ta"}},
		{"食べさせられた", "食べる", []string{"-ta", "potential or passive", "causative"}},
		{"書かなかった", "書く", []string{"-ta", "negative"}},
		{"読まず", "読む", []string{"-zu"}},
		{"読まぬ", "読む", []string{"-nu"}},
		{"分からん", "分かる", []string{"-n"}},
		{"取れる", "取る", []string{"potential"}},
		{"来ない", "来る", []string{"negative"}},
		{"こい", "くる", []string{"imperative"}},
		{"ない", "ある", []string{"negative"}},
		{"お茶", "茶", []string{"honorific prefix"}},
		{"食べている", "食べる", []string{"-te iru", "-te"}},
		{"食べてる", "食べる", []string{"-te iru", "-te"}},
		{"高くない", "高い", []string{"negative"}},
		{"飲みます", "飲む", []string{"-masu"}},
		{"飲みました", "飲む", []string{"-ta", "-masu"}},
		{"行った", "行く", []string{"-ta"}},
		{"泳いだ", "泳ぐ", []string{"-ta"}},
		{"早く", "早い", []string{"-ku"}},
		{"行けば", "行く", []string{"-ba"}},
		{"行きゃ", "行く", []string{"-ya", "-ba"}},
		{"食べちゃう", "食べる", []string{"-chimau"}},
		{"しよう", "する", []string{"volitional"}},
		{"書かせる", "書く", []string{"causative"}},
		{"書かれる", "書く", []string{"passive"}},
		{"食べたい", "食べる", []string{"-tai"}},
		{"食べすぎる", "食べる", []string{"-sugiru"}},
	}
	tbl := Japanese()
	for _, tt := range tests {
		res := tbl.Deinflect(tt.word)
		if _, ok := findResult(res, tt.term, tt.reasons...); !ok {
			t.Errorf("Deinflect(%q) has no %q via %v; got %v", tt.word, tt.term, tt.reasons, terms(res))
		}
	}
}

func TestJapaneseLookaroundAvoidsFalsePositive(t *testing.T) {
	for _, r := range Japanese().Deinflect("食べられる") {
		if r.Term == "食べらる" {
			t.Errorf("Deinflect(食べられる) produced 食べらる via %v", r.Reasons)
		}
	}
}

func TestJapaneseWholeWordIsAnchored(t *testing.T) {
	for _, r := range Japanese().Deinflect("すこい") {
		if r.Term == "すくる" {
			t.Errorf("whole word rule applied inside a word: %+v", r)
		}
	}
}

// Every literal suffix rule A -> B turns X+A into X+B in one step.
func TestJapaneseSuffixRulesRoundTrip(t *testing.T) {
	const stem = "テスト"
	tbl := Japanese()
	checked := 0
	for _, tr := range tbl.Transforms() {
		for i, r := range tr.Rules {
			if r.Rewrite() != RewriteSuffix || r.Lookaround() || regexp.QuoteMeta(r.Inflected) != r.Inflected {
				continue
			}
			word := stem + r.Inflected
			want := TraceFrame{Transform: tr.Name, Rule: i, Text: word}
			found := false
			for _, res := range tbl.Deinflect(word) {
				if len(res.Trace) == 1 && res.Trace[0] == want && res.Term == stem+r.Deinflected {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s rule %d: Deinflect(%q) has no %q", tr.Name, i, word, stem+r.Deinflected)
			}
			checked++
		}
	}
	if checked < 300 {
		t.Errorf("only %d literal suffix rules checked", checked)
	}
}

func TestJapaneseResultsWithinDepth(t *testing.T) {
	for _, word := range []string{"食べさせられなかった", "すっごい", "行かせられたくなかった", strings.Repeat("た", 40)} {
		for _, r := range Japanese().Deinflect(word) {
			if len(r.Reasons) > MaxDepth {
				t.Errorf("Deinflect(%q) chain of %d", word, len(r.Reasons))
			}
		}
	}
}

func TestJapaneseHonorificPrefixStaysLinear(t *testing.T) {
	word := strings.Repeat("お", 20) + "え"
	res := Japanese().Deinflect(word)
	if len(res) >= MaxResults/2 {
		t.Fatalf("Deinflect(%q) returned %d results", word, len(res))
	}
	if _, ok := findResult(res, strings.Repeat("お", 19)+"え", "honorific prefix"); !ok {
		t.Errorf("Deinflect(%q) missing one stripped prefix", word)
	}
}

func TestJapaneseConcurrentSearch(t *testing.T) {
	tbl := Japanese()
	want := len(tbl.Deinflect("食べさせられた"))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := len(tbl.Deinflect("食べさせられた")); got != want {
				t.Errorf("concurrent Deinflect returned %d results, want %d", got, want)
			}
		}()
	}
	wg.Wait()
}
