package textproc

import (
	"sort"

	"github.com/hazyhaar/yomikata/pkg/kana"
)

var (
	ConvertHalfWidthCharacters = Processor[bool]{
		ID:          "convert-half-width-characters",
		Name:        "Convert Half Width Characters to Full Width",
		Description: "ﾖﾐﾁｬﾝ → ヨミチャン",
		Options:     BasicOptions,
		Process:     toggle(kana.HalfwidthKanaToFullwidth),
	}

	AlphabeticToHiragana = Processor[bool]{
		ID:          "alphabetic-to-hiragana",
		Name:        "Convert Alphabetic Characters to Hiragana",
		Description: "yomichan → よみちゃん",
		Options:     BasicOptions,
		Process:     toggle(kana.AlphabeticToHiragana),
	}

	AlphanumericWidthVariants = Processor[Direction]{
		ID:          "alphanumeric-width-variants",
		Name:        "Convert Between Alphabetic Width Variants",
		Description: "ｙｏｍｉｔａｎ → yomitan and vice versa",
		Options:     Directions,
		Process:     bidirectional(kana.FullwidthAlphanumericToASCII, kana.ASCIIAlphanumericToFullwidth),
	}

	ConvertHiraganaToKatakana = Processor[Direction]{
		ID:          "convert-hiragana-to-katakana",
		Name:        "Convert Hiragana to Katakana",
		Description: "よみちゃん → ヨミチャン and vice versa",
		Options:     Directions,
		Process: bidirectional(kana.HiraganaToKatakana, func(s string) string {
			return kana.KatakanaToHiragana(s, false)
		}),
	}

	CollapseEmphaticSequences = Processor[EmphaticOption]{
		ID:          "collapse-emphatic-sequences",
		Name:        "Collapse Emphatic Character Sequences",
		Description: "すっっごーーい → すっごーい / すごい",
		Options:     EmphaticOptions,
		Process: func(text string, o EmphaticOption) string {
			if !o.Collapse {
				return text
			}
			return kana.CollapseEmphaticSequences(text, o.Full)
		},
	}

	NormalizeCombiningCharacters = Processor[bool]{
		ID:          "normalize-combining-characters",
		Name:        "Normalize Combining Characters",
		Description: "\u30c8\u3099 → ド (U+30C8 U+3099 → U+30C9)",
		Options:     BasicOptions,
		Process:     toggle(kana.NormalizeCombiningCharacters),
	}

	NormalizeCJKCompatibilityCharacters = Processor[bool]{
		ID:          "normalize-cjk-compatibility-characters",
		Name:        "Normalize CJK Compatibility Characters",
		Description: "㌀ → アパート",
		Options:     BasicOptions,
		Process:     toggle(kana.NormalizeCJKCompatibilityCharacters),
	}

	StandardizeKanji = Processor[bool]{
		ID:          "standardize-kanji",
		Name:        "Convert kanji variants to their modern standard form",
		Description: "萬 → 万",
		Options:     BasicOptions,
		Process:     toggle(kana.StandardizeKanji),
	}

	Decapitalize = Processor[bool]{
		ID:          "decapitalize",
		Name:        "Decapitalize Text",
		Description: "CAPITALIZED TEXT → capitalized text",
		Options:     BasicOptions,
		Process:     toggle(kana.Decapitalize),
	}

	CapitalizeFirstLetter = Processor[bool]{
		ID:          "capitalize-first-letter",
		Name:        "Capitalize First Letter",
		Description: "lowercase text → Lowercase text",
		Options:     BasicOptions,
		Process:     toggle(kana.CapitalizeFirstLetter),
	}

	RemoveAlphabeticDiacritics = Processor[bool]{
		ID:          "remove-alphabetic-diacritics",
		Name:        "Remove Alphabetic Diacritics",
		Description: "ἄήé → αηe",
		Options:     BasicOptions,
		Process:     toggle(kana.RemoveAlphabeticDiacritics),
	}
)

// Japanese returns the built-in processors in the order they are meant to
// run: width and shape normalization first, then script and semantic
// conversions.
func Japanese() []Descriptor {
	return []Descriptor{
		ConvertHalfWidthCharacters,
		AlphanumericWidthVariants,
		NormalizeCombiningCharacters,
		NormalizeCJKCompatibilityCharacters,
		StandardizeKanji,
		AlphabeticToHiragana,
		ConvertHiraganaToKatakana,
		CollapseEmphaticSequences,
	}
}

// Latin returns the processors for alphabetic text.
func Latin() []Descriptor {
	return []Descriptor{
		Decapitalize,
		CapitalizeFirstLetter,
		RemoveAlphabeticDiacritics,
	}
}

// All returns every built-in processor sorted by id.
func All() []Descriptor {
	all := append(Japanese(), Latin()...)
	sort.Slice(all, func(i, j int) bool { return all[i].Info().ID < all[j].Info().ID })
	return all
}

// Lookup finds a built-in processor by id.
func Lookup(id string) (Descriptor, bool) {
	return find(All(), id)
}
