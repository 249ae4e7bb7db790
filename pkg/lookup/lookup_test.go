package lookup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/yomikata/pkg/deinflect"
	"github.com/hazyhaar/yomikata/pkg/segment"
	"github.com/hazyhaar/yomikata/pkg/termdb"
	"github.com/hazyhaar/yomikata/pkg/textproc"
)

// memStore is an in-memory HeadwordStore.
type memStore struct {
	terms []termdb.Term
	calls int
	err   error
}

func (m *memStore) FindAny(_ context.Context, texts []string) (map[string][]termdb.Term, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string][]termdb.Term)
	for _, text := range texts {
		for _, t := range m.terms {
			if t.Expression == text || t.Reading == text {
				out[text] = append(out[text], t)
			}
		}
	}
	return out, nil
}

func newStore() *memStore {
	return &memStore{terms: []termdb.Term{
		{ID: 1, Expression: "食べる", Reading: "たべる", Tags: []string{"v1"}, Glossary: []string{"to eat"}},
		{ID: 2, Expression: "私", Reading: "わたし", Glossary: []string{"I"}},
		{ID: 3, Expression: "高い", Reading: "たかい", Tags: []string{"adj-i"}, Glossary: []string{"tall"}},
		{ID: 4, Expression: "行く", Reading: "いく", Tags: []string{"v5"}, Glossary: []string{"to go"}},
	}}
}

func newService(t *testing.T, store HeadwordStore, cfg Config) *Service {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s, err := New(deinflect.Japanese(), store, cfg)
	require.NoError(t, err)
	return s
}

func expressions(m Match) []string {
	var out []string
	for _, e := range m.Entries {
		out = append(out, e.Term.Expression)
	}
	return out
}

func TestLookupDeinflects(t *testing.T) {
	s := newService(t, newStore(), Config{})
	ctx := context.Background()

	tests := []struct {
		text    string
		match   string
		expr    string
		reasons []string
	}{
		{"食べさせられた", "食べさせられた", "食べる", []string{"-ta", "potential or passive", "causative"}},
		{"食べたいです", "食べたい", "食べる", []string{"-tai"}},
		{"高くない", "高くない", "高い", []string{"negative"}},
		{"行った", "行った", "行く", []string{"-ta"}},
		{"私は", "私", "私", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m, ok, err := s.Lookup(ctx, tt.text)
			require.NoError(t, err)
			require.True(t, ok, "no match")
			assert.Equal(t, tt.match, m.Text)
			assert.Equal(t, len(tt.match), m.End)
			require.Contains(t, expressions(m), tt.expr)
			for _, e := range m.Entries {
				if e.Term.Expression == tt.expr {
					assert.Equal(t, len(tt.reasons), len(e.Deinflection.Reasons), "reasons %v", e.Deinflection.Reasons)
					if len(tt.reasons) > 0 {
						assert.Equal(t, tt.reasons, e.Deinflection.Reasons)
					}
				}
			}
		})
	}
}

func TestLookupUsesProcessorVariants(t *testing.T) {
	s := newService(t, newStore(), Config{})
	m, ok, err := s.Lookup(context.Background(), "ﾀﾍﾞﾀ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ﾀﾍﾞﾀ", m.Text)
	require.Equal(t, []string{"食べる"}, expressions(m))
	assert.Equal(t, "たべた", m.Entries[0].Variant.Text)
	assert.NotEmpty(t, m.Entries[0].Variant.Steps)
	assert.Equal(t, "v1", m.Entries[0].Conditions)
}

func TestLookupFiltersByConditions(t *testing.T) {
	store := &memStore{terms: []termdb.Term{
		{ID: 1, Expression: "食べる", Tags: []string{"v5"}},
	}}
	s := newService(t, store, Config{})
	_, ok, err := s.Lookup(context.Background(), "食べた")
	require.NoError(t, err)
	assert.False(t, ok, "a v1 candidate must not match a v5 entry")

	// The undeinflected text matches regardless of tags.
	m, ok, err := s.Lookup(context.Background(), "食べる")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, m.Entries[0].Deinflection.Reasons)
}

func TestLookupRespectsMaxScanLength(t *testing.T) {
	s := newService(t, newStore(), Config{MaxScanLength: 2})
	m, ok, err := s.Lookup(context.Background(), "私私私私")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "私", m.Text)

	_, ok, err = s.Lookup(context.Background(), "食べさせられた")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupCache(t *testing.T) {
	store := newStore()
	s := newService(t, store, Config{})
	ctx := context.Background()

	_, _, err := s.Lookup(ctx, "食べた")
	require.NoError(t, err)
	_, _, err = s.Lookup(ctx, "食べた")
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, Stats{Hits: 1, Misses: 1}, s.Stats())

	s.SetTable(deinflect.Japanese())
	_, _, err = s.Lookup(ctx, "食べた")
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls, "SetTable must clear the cache")

	uncached := newService(t, store, Config{CacheSize: -1})
	_, _, _ = uncached.Lookup(ctx, "食べた")
	_, _, _ = uncached.Lookup(ctx, "食べた")
	assert.Equal(t, 4, store.calls)
	assert.Equal(t, Stats{}, uncached.Stats())
}

func TestLookupErrors(t *testing.T) {
	_, _, err := newService(t, nil, Config{}).Lookup(context.Background(), "食べた")
	assert.ErrorIs(t, err, ErrNoStore)

	boom := errors.New("boom")
	_, _, err = newService(t, &memStore{err: boom}, Config{}).Lookup(context.Background(), "食べた")
	assert.ErrorIs(t, err, boom)

	_, err = New(nil, nil, Config{})
	assert.Error(t, err)

	m, ok, err := newService(t, newStore(), Config{}).Lookup(context.Background(), "")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, m.Entries)
}

func TestScanByRune(t *testing.T) {
	s := newService(t, newStore(), Config{})
	text := "私は食べた。 高い"
	matches, err := s.Scan(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	want := []string{"私", "食べた", "高い"}
	for i, m := range matches {
		assert.Equal(t, want[i], m.Text)
		assert.Equal(t, m.Text, text[m.Start:m.End])
	}
}

func TestScanWithSegmenter(t *testing.T) {
	seg, err := segment.New()
	require.NoError(t, err)
	s := newService(t, newStore(), Config{Segmenter: seg})

	text := "私は寿司を食べたい"
	matches, err := s.Scan(context.Background(), text)
	require.NoError(t, err)
	var got []string
	for _, m := range matches {
		got = append(got, text[m.Start:m.End])
	}
	assert.Equal(t, []string{"私", "食べたい"}, got)
}

func TestScanWithTermDB(t *testing.T) {
	db, err := termdb.Open(filepath.Join(t.TempDir(), "terms.db"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	_, err = db.Insert(ctx, newStore().terms)
	require.NoError(t, err)

	s := newService(t, db, Config{})
	matches, err := s.Scan(ctx, "行かなかった")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "行く", matches[0].Entries[0].Term.Expression)
	assert.Equal(t, []string{"-ta", "negative"}, matches[0].Entries[0].Deinflection.Reasons)
}

func TestProcessAndProcessors(t *testing.T) {
	s := newService(t, newStore(), Config{})
	out, err := s.Process("ﾖﾐﾁｬﾝ", []textproc.StageConfig{
		{Processor: "convert-half-width-characters", Option: "true"},
		{Processor: "convert-hiragana-to-katakana", Option: "inverse"},
	})
	require.NoError(t, err)
	assert.Equal(t, "よみちゃん", out)

	_, err = s.Process("x", []textproc.StageConfig{{Processor: "nope", Option: "true"}})
	assert.ErrorIs(t, err, textproc.ErrUnknownProcessor)

	assert.Len(t, s.Processors(), len(textproc.Japanese()))
	s.SetProcessors(textproc.Latin())
	assert.Len(t, s.Processors(), len(textproc.Latin()))
}

func TestDeinflectUsesCurrentTable(t *testing.T) {
	s := newService(t, newStore(), Config{})
	assert.Greater(t, len(s.Deinflect("食べた")), 1)

	empty := deinflect.MustBuild(deinflect.LanguageSpec{Language: "none"})
	s.SetTable(empty)
	assert.Same(t, empty, s.Table())
	assert.Len(t, s.Deinflect("食べた"), 1)
}
