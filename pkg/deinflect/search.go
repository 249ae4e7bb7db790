package deinflect

// MaxDepth is the longest rule chain a search follows.
const MaxDepth = 12

// MaxResults caps the candidates one search returns, identity included.
// Ordinary words stay far below it.
const MaxResults = 512

// TraceFrame records one rule application.
type TraceFrame struct {
	Transform string `json:"transform"`
	Rule      int    `json:"rule"`
	Text      string `json:"text"`
}

// Result is one candidate base form. Reasons lists transform names,
// outermost inflection first.
type Result struct {
	Term       string       `json:"term"`
	Conditions Conditions   `json:"conditions"`
	Reasons    []string     `json:"reasons"`
	Trace      []TraceFrame `json:"trace,omitempty"`
}

// Deinflect returns every candidate base form of word, starting with word
// itself.
func (t *Table) Deinflect(word string) []Result {
	return t.DeinflectWith(word, 0)
}

// DeinflectWith is Deinflect with the first rule's inflected form
// constrained to conditions compatible with constraint.
//
// Results come in declaration order, depth first. Candidates reached through
// different chains are all kept. Prefix rules only apply before the first
// rule of any other type on a chain, so a prefix and a suffix are stripped
// in one order only.
func (t *Table) DeinflectWith(word string, constraint Conditions) []Result {
	s := &searcher{table: t}
	s.path = append(s.path, node{word, constraint})
	s.walk(word, constraint, true)
	return s.results
}

// IsDictionaryForm reports whether r may be looked up as a headword: either
// no rule was applied or the last rule produced a dictionary form.
func (t *Table) IsDictionaryForm(r Result) bool {
	return len(r.Trace) == 0 || r.Conditions == 0 || r.Conditions&t.conditions.DictionaryForms() != 0
}

type node struct {
	text       string
	conditions Conditions
}

type searcher struct {
	table   *Table
	results []Result
	path    []node
	trace   []TraceFrame
}

func (s *searcher) walk(text string, conditions Conditions, prefixes bool) {
	s.emit(text, conditions)
	if len(s.trace) >= MaxDepth {
		return
	}
	for _, tr := range s.table.transforms {
		if !tr.mayMatch(text) {
			continue
		}
		for i, r := range tr.Rules {
			if len(s.results) >= MaxResults {
				return
			}
			if r.Type == Prefix && !prefixes {
				continue
			}
			if !Compatible(conditions, r.ConditionsOut) {
				continue
			}
			frame := TraceFrame{Transform: tr.Name, Rule: i, Text: text}
			if s.onTrace(frame) {
				continue
			}
			next, ok := r.Deinflect(text)
			if !ok {
				continue
			}
			n := node{next, r.ConditionsIn}
			if s.onPath(n) {
				continue
			}
			s.trace = append(s.trace, frame)
			s.path = append(s.path, n)
			s.walk(next, r.ConditionsIn, prefixes && r.Type == Prefix)
			s.trace = s.trace[:len(s.trace)-1]
			s.path = s.path[:len(s.path)-1]
		}
	}
}

func (s *searcher) emit(text string, conditions Conditions) {
	res := Result{Term: text, Conditions: conditions, Reasons: make([]string, len(s.trace))}
	if len(s.trace) > 0 {
		res.Trace = make([]TraceFrame, len(s.trace))
		copy(res.Trace, s.trace)
	}
	for i, f := range s.trace {
		res.Reasons[i] = f.Transform
	}
	s.results = append(s.results, res)
}

func (s *searcher) onTrace(f TraceFrame) bool {
	for _, g := range s.trace {
		if g == f {
			return true
		}
	}
	return false
}

func (s *searcher) onPath(n node) bool {
	for _, p := range s.path {
		if p == n {
			return true
		}
	}
	return false
}
