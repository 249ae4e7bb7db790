package deinflect

import (
	"strings"
	"unicode/utf8"
)

// CustomFuncs are the named irregular rewrites rule files can refer to.
var CustomFuncs = map[string]DeinflectFunc{
	"negative-zu": aRowToURow("ず"),
	"negative-nu": aRowToURow("ぬ"),
	"negative-n":  aRowToURow("ん"),
}

var aRowToU = map[rune]rune{
	'か': 'く', 'が': 'ぐ', 'さ': 'す', 'た': 'つ', 'な': 'ぬ',
	'ば': 'ぶ', 'ま': 'む', 'ら': 'る', 'わ': 'う',
}

// aRowToURow drops ending and moves the godan stem vowel from the a-row to
// the u-row (読まず → 読む).
func aRowToURow(ending string) DeinflectFunc {
	return func(word string) string {
		stem, ok := strings.CutSuffix(word, ending)
		if !ok {
			return ""
		}
		r, size := utf8.DecodeLastRuneInString(stem)
		u, ok := aRowToU[r]
		if !ok {
			return ""
		}
		return stem[:len(stem)-size] + string(u)
	}
}
