package kana

import "strings"

// romaji maps lowercase Hepburn/Kunrei syllables to hiragana. Built once.
var romaji = func() map[string]string {
	rows := map[string][5]string{
		"":   {"あ", "い", "う", "え", "お"},
		"k":  {"か", "き", "く", "け", "こ"},
		"s":  {"さ", "し", "す", "せ", "そ"},
		"t":  {"た", "ち", "つ", "て", "と"},
		"n":  {"な", "に", "ぬ", "ね", "の"},
		"h":  {"は", "ひ", "ふ", "へ", "ほ"},
		"m":  {"ま", "み", "む", "め", "も"},
		"y":  {"や", "い", "ゆ", "いぇ", "よ"},
		"r":  {"ら", "り", "る", "れ", "ろ"},
		"l":  {"ぁ", "ぃ", "ぅ", "ぇ", "ぉ"},
		"x":  {"ぁ", "ぃ", "ぅ", "ぇ", "ぉ"},
		"w":  {"わ", "うぃ", "う", "うぇ", "を"},
		"g":  {"が", "ぎ", "ぐ", "げ", "ご"},
		"z":  {"ざ", "じ", "ず", "ぜ", "ぞ"},
		"d":  {"だ", "ぢ", "づ", "で", "ど"},
		"b":  {"ば", "び", "ぶ", "べ", "ぼ"},
		"p":  {"ぱ", "ぴ", "ぷ", "ぺ", "ぽ"},
		"f":  {"ふぁ", "ふぃ", "ふ", "ふぇ", "ふぉ"},
		"v":  {"ゔぁ", "ゔぃ", "ゔ", "ゔぇ", "ゔぉ"},
		"j":  {"じゃ", "じ", "じゅ", "じぇ", "じょ"},
		"sh": {"しゃ", "し", "しゅ", "しぇ", "しょ"},
		"ch": {"ちゃ", "ち", "ちゅ", "ちぇ", "ちょ"},
		"ts": {"つぁ", "つぃ", "つ", "つぇ", "つぉ"},
		"ky": {"きゃ", "きぃ", "きゅ", "きぇ", "きょ"},
		"gy": {"ぎゃ", "ぎぃ", "ぎゅ", "ぎぇ", "ぎょ"},
		"sy": {"しゃ", "しぃ", "しゅ", "しぇ", "しょ"},
		"zy": {"じゃ", "じぃ", "じゅ", "じぇ", "じょ"},
		"jy": {"じゃ", "じぃ", "じゅ", "じぇ", "じょ"},
		"ty": {"ちゃ", "ちぃ", "ちゅ", "ちぇ", "ちょ"},
		"cy": {"ちゃ", "ちぃ", "ちゅ", "ちぇ", "ちょ"},
		"dy": {"ぢゃ", "ぢぃ", "ぢゅ", "ぢぇ", "ぢょ"},
		"ny": {"にゃ", "にぃ", "にゅ", "にぇ", "にょ"},
		"hy": {"ひゃ", "ひぃ", "ひゅ", "ひぇ", "ひょ"},
		"by": {"びゃ", "びぃ", "びゅ", "びぇ", "びょ"},
		"py": {"ぴゃ", "ぴぃ", "ぴゅ", "ぴぇ", "ぴょ"},
		"my": {"みゃ", "みぃ", "みゅ", "みぇ", "みょ"},
		"ry": {"りゃ", "りぃ", "りゅ", "りぇ", "りょ"},
		"xy": {"ゃ", "ぃ", "ゅ", "ぇ", "ょ"},
		"ly": {"ゃ", "ぃ", "ゅ", "ぇ", "ょ"},
	}
	m := make(map[string]string, len(rows)*5+8)
	for consonant, kana := range rows {
		for i, vowel := range "aiueo" {
			m[consonant+string(vowel)] = kana[i]
		}
	}
	for k, v := range map[string]string{
		"si": "し", "ti": "ち", "tu": "つ", "hu": "ふ", "zi": "じ", "di": "ぢ", "du": "づ",
		"xtu": "っ", "ltu": "っ", "xtsu": "っ", "ltsu": "っ",
		"xka": "ゕ", "xke": "ゖ", "xwa": "ゎ", "lwa": "ゎ",
		"-": "ー",
	} {
		m[k] = v
	}
	return m
}()

const maxRomajiLen = 4

// AlphabeticToHiragana transliterates ASCII romaji to hiragana
// (yomichan → よみちゃん). Doubled consonants become っ, and n before a
// consonant or at the end becomes ん. Input that is not romaji passes
// through unchanged.
func AlphabeticToHiragana(s string) string {
	if !strings.ContainsFunc(s, isASCIILetter) && !strings.Contains(s, "-") {
		return s
	}
	// Only ASCII is folded so byte offsets line up with s.
	lower := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(lower); {
		c := lower[i]
		if c >= 0x80 {
			j := i + 1
			for j < len(lower) && lower[j]&0xC0 == 0x80 {
				j++
			}
			b.WriteString(lower[i:j])
			i = j
			continue
		}

		if c == 'n' && !followedByVowelOrY(lower, i+1) {
			switch {
			case i+1 < len(lower) && lower[i+1] == '\'':
				i += 2
			case i+1 < len(lower) && lower[i+1] == 'n' && !followedByVowelOrY(lower, i+2):
				i += 2
			default:
				i++
			}
			b.WriteString("ん")
			continue
		}

		if c == 't' && strings.HasPrefix(lower[i+1:], "ch") {
			b.WriteString("っ")
			i++
			continue
		}
		if i+1 < len(lower) && lower[i+1] == c && isASCIILetter(rune(c)) && !strings.ContainsRune("aiueon", rune(c)) {
			b.WriteString("っ")
			i++
			continue
		}

		matched := false
		for n := min(maxRomajiLen, len(lower)-i); n > 0; n-- {
			if kana, ok := romaji[lower[i:i+n]]; ok {
				b.WriteString(kana)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

func followedByVowelOrY(s string, i int) bool {
	return i < len(s) && strings.IndexByte("aiueoy", s[i]) >= 0
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
