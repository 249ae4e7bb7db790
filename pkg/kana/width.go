package kana

import (
	"strings"

	"golang.org/x/text/width"
)

// HalfwidthKanaToFullwidth widens halfwidth katakana and punctuation
// (U+FF61–U+FF9F) and merges a following halfwidth ﾞ or ﾟ into the kana
// before it (ｶﾞ → ガ). A sound mark with nothing to combine with becomes the
// fullwidth spacing mark.
func HalfwidthKanaToFullwidth(s string) string {
	if !strings.ContainsFunc(s, isHalfwidthKana) {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !isHalfwidthKana(r) {
			out = append(out, r)
			continue
		}
		w := width.LookupRune(r).Wide()
		if w == 0 {
			w = r
		}
		if mark, spacing, ok := soundMark(w); ok {
			if len(out) > 0 {
				if c, ok := compose(out[len(out)-1], mark); ok {
					out[len(out)-1] = c
					continue
				}
			}
			w = spacing
		}
		out = append(out, w)
	}
	return string(out)
}

func isHalfwidthKana(r rune) bool { return r >= 0xFF61 && r <= 0xFF9F }

// soundMark classifies the widened form of ﾞ and ﾟ, returning the combining
// mark to compose with and the spacing mark to fall back to.
func soundMark(r rune) (mark, spacing rune, ok bool) {
	switch r {
	case combiningVoiced, spacingVoiced:
		return combiningVoiced, spacingVoiced, true
	case combiningSemiVoiced, spacingSemiVoiced:
		return combiningSemiVoiced, spacingSemiVoiced, true
	}
	return 0, 0, false
}

// FullwidthAlphanumericToASCII narrows fullwidth digits and Latin letters
// (０-９, Ａ-Ｚ, ａ-ｚ) to ASCII. Other characters are untouched.
func FullwidthAlphanumericToASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if !isFullwidthAlphanumeric(r) {
			return r
		}
		if n := width.LookupRune(r).Narrow(); n != 0 {
			return n
		}
		return r - 0xFEE0
	}, s)
}

// ASCIIAlphanumericToFullwidth is the inverse of
// FullwidthAlphanumericToASCII on [0-9A-Za-z].
func ASCIIAlphanumericToFullwidth(s string) string {
	return strings.Map(func(r rune) rune {
		if !isASCIIAlphanumeric(r) {
			return r
		}
		if w := width.LookupRune(r).Wide(); w != 0 {
			return w
		}
		return r + 0xFEE0
	}, s)
}

func isASCIIAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isFullwidthAlphanumeric(r rune) bool {
	return (r >= '０' && r <= '９') || (r >= 'Ａ' && r <= 'Ｚ') || (r >= 'ａ' && r <= 'ｚ')
}
