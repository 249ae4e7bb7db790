// Package lookup ties the pieces together: text processors produce
// variants of the input, the rule table deinflects them, and the headword
// store confirms which candidates are real dictionary entries.
package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hazyhaar/yomikata/pkg/deinflect"
	"github.com/hazyhaar/yomikata/pkg/segment"
	"github.com/hazyhaar/yomikata/pkg/termdb"
	"github.com/hazyhaar/yomikata/pkg/textproc"
)

// Defaults applied by New for zero Config fields.
const (
	DefaultMaxScanLength = 16
	DefaultMaxVariants   = 32
	DefaultCacheSize     = 1024
)

// HeadwordStore finds dictionary entries by expression or reading.
type HeadwordStore interface {
	FindAny(ctx context.Context, texts []string) (map[string][]termdb.Term, error)
}

// Segmenter splits text into words; *segment.Segmenter implements it.
type Segmenter interface {
	Segment(text string) []segment.Token
}

// Config configures a Service.
type Config struct {
	// MaxScanLength is the longest prefix, in runes, Lookup tries.
	MaxScanLength int
	// MaxVariants caps the processor variants kept per processor.
	MaxVariants int
	// CacheSize is the number of Lookup results kept. Negative disables the
	// cache.
	CacheSize  int
	Processors []textproc.Descriptor
	Segmenter  Segmenter
	Logger     *slog.Logger
}

// Entry is a dictionary entry reached from the input text.
type Entry struct {
	Term termdb.Term `json:"term"`
	// Variant is the processed form of the matched text that was
	// deinflected.
	Variant      textproc.Variant `json:"variant"`
	Deinflection deinflect.Result `json:"deinflection"`
	// Conditions renders Deinflection.Conditions as tags.
	Conditions string `json:"conditions,omitempty"`
}

// Match is the longest prefix of a text that reached dictionary entries.
// Start and End are byte offsets into the text given to Lookup or Scan.
type Match struct {
	Text    string  `json:"text"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Entries []Entry `json:"entries"`
}

// Stats counts cache use since the service started.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// Service answers lookups. The table and processors can be swapped while
// lookups run; each lookup uses one consistent snapshot.
type Service struct {
	mu    sync.RWMutex
	table *deinflect.Table
	procs []textproc.Descriptor
	gen   uint64 // bumped on every swap; stale lookups are not cached

	store       HeadwordStore
	segmenter   Segmenter
	cache       *lru.Cache[string, Match]
	logger      *slog.Logger
	maxScan     int
	maxVariants int

	hits, misses atomic.Uint64
}

// New returns a Service over table and store. store may be nil, in which
// case Lookup and Scan fail and the rest works.
func New(table *deinflect.Table, store HeadwordStore, cfg Config) (*Service, error) {
	if table == nil {
		return nil, fmt.Errorf("lookup: nil rule table")
	}
	s := &Service{
		table:       table,
		procs:       cfg.Processors,
		store:       store,
		segmenter:   cfg.Segmenter,
		logger:      cfg.Logger,
		maxScan:     cfg.MaxScanLength,
		maxVariants: cfg.MaxVariants,
	}
	if s.procs == nil {
		s.procs = textproc.Japanese()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.maxScan <= 0 {
		s.maxScan = DefaultMaxScanLength
	}
	if s.maxVariants <= 0 {
		s.maxVariants = DefaultMaxVariants
	}
	size := cfg.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	if size > 0 {
		c, err := lru.New[string, Match](size)
		if err != nil {
			return nil, fmt.Errorf("lookup cache: %w", err)
		}
		s.cache = c
	}
	return s, nil
}

func (s *Service) snapshot() (*deinflect.Table, []textproc.Descriptor) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.procs
}

// Table returns the current rule table.
func (s *Service) Table() *deinflect.Table {
	t, _ := s.snapshot()
	return t
}

// SetTable swaps the rule table and clears cached lookups.
func (s *Service) SetTable(t *deinflect.Table) {
	s.mu.Lock()
	s.table = t
	s.gen++
	s.mu.Unlock()
	s.purge()
	s.logger.Info("rule table replaced", "language", t.Language(), "transforms", len(t.Transforms()), "rules", t.RuleCount())
}

// SetProcessors swaps the processor list and clears cached lookups.
func (s *Service) SetProcessors(procs []textproc.Descriptor) {
	s.mu.Lock()
	s.procs = procs
	s.gen++
	s.mu.Unlock()
	s.purge()
}

// Processors describes the current processors.
func (s *Service) Processors() []textproc.Info {
	_, procs := s.snapshot()
	out := make([]textproc.Info, len(procs))
	for i, d := range procs {
		out[i] = d.Info()
	}
	return out
}

// Deinflect runs the rule table on word.
func (s *Service) Deinflect(word string) []deinflect.Result {
	return s.Table().Deinflect(word)
}

// Process runs text through the named processor stages, in order.
func (s *Service) Process(text string, stages []textproc.StageConfig) (string, error) {
	_, procs := s.snapshot()
	p, err := textproc.NewPipeline(procs, stages)
	if err != nil {
		return "", err
	}
	return p.Run(text), nil
}

// Variants expands text through every option of the current processors,
// keeping at most MaxVariants texts per processor.
func (s *Service) Variants(text string) []textproc.Variant {
	_, procs := s.snapshot()
	return textproc.Variants(text, procs, s.maxVariants)
}

// Stats returns cache counters.
func (s *Service) Stats() Stats {
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load()}
}

func (s *Service) purge() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// window returns the prefix of text Lookup may match.
func (s *Service) window(text string) string {
	n := 0
	for i := range text {
		if n == s.maxScan {
			return text[:i]
		}
		n++
	}
	return text
}

// prefixes returns the rune prefixes of text, longest first.
func prefixes(text string) []string {
	out := make([]string, 0, utf8.RuneCountInString(text))
	for end := len(text); end > 0; {
		out = append(out, text[:end])
		_, size := utf8.DecodeLastRuneInString(text[:end])
		end -= size
	}
	return out
}
