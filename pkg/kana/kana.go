// Package kana provides the script conversions used to normalize Japanese
// lookup text: kana script swaps, width variants, combining marks and
// emphatic sequences.
//
// Every function is a pure string rewrite. Input that is already in the
// target form is returned unchanged, and applying a conversion twice gives
// the same result as applying it once. All functions are safe for concurrent
// use.
package kana

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	hiraganaStart   = 0x3041 // ぁ
	hiraganaEnd     = 0x3096 // ゖ
	katakanaStart   = 0x30A1 // ァ
	katakanaEnd     = 0x30F6 // ヶ
	smallKatakanaKa = 'ヵ'
	smallKatakanaKe = 'ヶ'
	kanaOffset      = katakanaStart - hiraganaStart

	prolongedSoundMark = 'ー'

	combiningVoiced     = '\u3099'
	combiningSemiVoiced = '\u309a'
	spacingVoiced       = '゛'
	spacingSemiVoiced   = '゜'
)

// IsHiragana reports whether r is in the convertible hiragana range.
func IsHiragana(r rune) bool { return r >= hiraganaStart && r <= hiraganaEnd }

// IsKatakana reports whether r is in the convertible katakana range.
func IsKatakana(r rune) bool { return r >= katakanaStart && r <= katakanaEnd }

// HiraganaToKatakana converts every hiragana to its katakana counterpart.
func HiraganaToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if IsHiragana(r) {
			return r + kanaOffset
		}
		return r
	}, s)
}

// KatakanaToHiragana converts every katakana to hiragana, except the counters
// ヵ and ヶ (一ヶ月). Unless
// keepProlongedSoundMarks is set, a ー following kana is replaced by the
// vowel it lengthens (カー → かあ).
func KatakanaToHiragana(s string, keepProlongedSoundMarks bool) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		switch {
		case r == smallKatakanaKa || r == smallKatakanaKe:
		case IsKatakana(r):
			r -= kanaOffset
		case r == prolongedSoundMark && !keepProlongedSoundMarks:
			if v, ok := vowelOf[prev]; ok {
				r = v
			}
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// vowelOf maps hiragana to the vowel a following ー stands for.
var vowelOf = func() map[rune]rune {
	rows := map[rune]string{
		'あ': "ぁあかがさざただなはばぱまゃやらゎわゕ",
		'い': "ぃいきぎしじちぢにひびぴみりゐ",
		'う': "ぅうくぐすずっつづぬふぶぷむゅゆるゔ",
		'え': "ぇえけげせぜてでねへべぺめれゑゖ",
		'お': "ぉおこごそぞとどのほぼぽもょよろを",
	}
	m := make(map[rune]rune)
	for vowel, kana := range rows {
		for _, r := range kana {
			m[r] = vowel
		}
	}
	return m
}()

// compose joins a kana and a combining (semi-)voiced sound mark into a
// single precomposed rune when Unicode defines one.
func compose(base, mark rune) (rune, bool) {
	s := norm.NFC.String(string([]rune{base, mark}))
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == base {
		return base, false
	}
	return r, true
}

// NormalizeCombiningCharacters composes kana followed by a combining voiced
// or semi-voiced sound mark (ト followed by U+3099 becomes ド). Marks that
// cannot combine are left in place.
func NormalizeCombiningCharacters(s string) string {
	if !strings.ContainsAny(s, "\u3099\u309a") {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if (r == combiningVoiced || r == combiningSemiVoiced) && len(out) > 0 {
			if c, ok := compose(out[len(out)-1], r); ok {
				out[len(out)-1] = c
				continue
			}
		}
		out = append(out, r)
	}
	return string(out)
}

// CollapseEmphaticSequences shortens runs of the emphatic characters っ, ッ
// and ー inside a word. Runs at the start or end of s are kept as written.
// When full is false a run is reduced to one character; when full is true it
// is removed entirely.
func CollapseEmphaticSequences(s string, full bool) string {
	rs := []rune(s)
	left := 0
	for left < len(rs) && isEmphatic(rs[left]) {
		left++
	}
	right := len(rs) - 1
	for right >= 0 && isEmphatic(rs[right]) {
		right--
	}
	if left > right {
		return s
	}

	out := make([]rune, 0, len(rs))
	out = append(out, rs[:left]...)
	var current rune = -1
	for _, r := range rs[left : right+1] {
		if !isEmphatic(r) {
			current = -1
			out = append(out, r)
			continue
		}
		if current != r {
			current = r
			if !full {
				out = append(out, r)
			}
		}
	}
	out = append(out, rs[right+1:]...)
	return string(out)
}

func isEmphatic(r rune) bool {
	return r == 'っ' || r == 'ッ' || r == prolongedSoundMark
}
