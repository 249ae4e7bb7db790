package deinflect

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single lookaround match.
const MatchTimeout = 50 * time.Millisecond

// Matcher finds the leftmost match of a compiled rule pattern. Offsets are
// byte offsets into s.
type Matcher interface {
	FindIndex(s string) (start, end int, ok bool)
	String() string
}

// compilePattern picks the standard engine unless the pattern needs
// lookaround.
func compilePattern(expr string, lookaround bool) (Matcher, error) {
	if !lookaround {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
		}
		return stdMatcher{re}, nil
	}
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	re.MatchTimeout = MatchTimeout
	return lookaroundMatcher{re}, nil
}

type stdMatcher struct{ re *regexp.Regexp }

func (m stdMatcher) FindIndex(s string) (int, int, bool) {
	loc := m.re.FindStringIndex(s)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

func (m stdMatcher) String() string { return m.re.String() }

type lookaroundMatcher struct{ re *regexp2.Regexp }

// FindIndex treats an engine error (timeout) as no match.
func (m lookaroundMatcher) FindIndex(s string) (int, int, bool) {
	match, err := m.re.FindStringMatch(s)
	if err != nil || match == nil {
		return 0, 0, false
	}
	start := runeOffset(s, match.Index)
	end := start + runeOffset(s[start:], match.Length)
	return start, end, true
}

func (m lookaroundMatcher) String() string { return m.re.String() }

// runeOffset converts a rune index into a byte offset of s.
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
