package lookup

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/hazyhaar/yomikata/pkg/deinflect"
	"github.com/hazyhaar/yomikata/pkg/termdb"
	"github.com/hazyhaar/yomikata/pkg/textproc"
)

// ErrNoStore is returned by Lookup and Scan on a Service without a store.
var ErrNoStore = errors.New("lookup: no headword store")

type candidate struct {
	variant textproc.Variant
	result  deinflect.Result
}

// Lookup finds the longest prefix of text, at most MaxScanLength runes,
// that reaches dictionary entries. Each prefix is expanded into processor
// variants, every variant is deinflected, and a candidate keeps an entry
// when the candidate carries no conditions or shares one with the entry's
// tags. ok is false when nothing matched.
func (s *Service) Lookup(ctx context.Context, text string) (m Match, ok bool, err error) {
	if s.store == nil {
		return Match{}, false, ErrNoStore
	}
	win := s.window(text)
	if win == "" {
		return Match{}, false, nil
	}
	if s.cache != nil {
		if m, hit := s.cache.Get(win); hit {
			s.hits.Add(1)
			return m, len(m.Entries) > 0, nil
		}
		s.misses.Add(1)
	}

	s.mu.RLock()
	table, procs, gen := s.table, s.procs, s.gen
	s.mu.RUnlock()

	m, err = s.match(ctx, table, procs, win)
	if err != nil {
		return Match{}, false, err
	}
	if s.cache != nil {
		s.mu.RLock()
		if s.gen == gen {
			s.cache.Add(win, m)
		}
		s.mu.RUnlock()
	}
	return m, len(m.Entries) > 0, nil
}

func (s *Service) match(ctx context.Context, table *deinflect.Table, procs []textproc.Descriptor, win string) (Match, error) {
	ct := table.Conditions()
	pres := prefixes(win)
	byPrefix := make(map[string][]candidate, len(pres))
	seen := make(map[string]bool)
	var texts []string
	for _, p := range pres {
		for _, v := range textproc.Variants(p, procs, s.maxVariants) {
			for _, r := range table.Deinflect(v.Text) {
				if !table.IsDictionaryForm(r) {
					continue
				}
				byPrefix[p] = append(byPrefix[p], candidate{variant: v, result: r})
				if !seen[r.Term] {
					seen[r.Term] = true
					texts = append(texts, r.Term)
				}
			}
		}
	}

	found, err := s.store.FindAny(ctx, texts)
	if err != nil {
		return Match{}, fmt.Errorf("lookup %q: %w", win, err)
	}
	for _, p := range pres {
		var entries []Entry
		ids := make(map[int64]bool)
		for _, c := range byPrefix[p] {
			for _, term := range found[c.result.Term] {
				if ids[term.ID] || !accepts(ct, c.result, term) {
					continue
				}
				ids[term.ID] = true
				entries = append(entries, Entry{
					Term:         term,
					Variant:      c.variant,
					Deinflection: c.result,
					Conditions:   ct.Format(c.result.Conditions),
				})
			}
		}
		if len(entries) > 0 {
			s.logger.Debug("lookup matched", "text", p, "candidates", len(byPrefix[p]), "entries", len(entries))
			return Match{Text: p, End: len(p), Entries: entries}, nil
		}
	}
	return Match{}, nil
}

func accepts(ct *deinflect.ConditionTable, r deinflect.Result, term termdb.Term) bool {
	return r.Conditions == 0 || r.Conditions&ct.FlagsLenient(term.Tags) != 0
}

// Scan walks text and returns the non-overlapping matches found from each
// word start, left to right. Word starts come from the Segmenter when one
// is configured, otherwise every non-space rune starts a scan.
func (s *Service) Scan(ctx context.Context, text string) ([]Match, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	var out []Match
	covered := 0
	for _, start := range s.starts(text) {
		if start < covered {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, ok, err := s.Lookup(ctx, text[start:])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		m.Start += start
		m.End += start
		out = append(out, m)
		covered = m.End
	}
	return out, nil
}

func (s *Service) starts(text string) []int {
	var out []int
	if s.segmenter != nil {
		for _, tok := range s.segmenter.Segment(text) {
			out = append(out, tok.Start)
		}
		return out
	}
	for i, r := range text {
		if !unicode.IsSpace(r) {
			out = append(out, i)
		}
	}
	return out
}
