package kana

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticPool hands out NFD → drop U+0300–U+036F → NFC chains. A chain
// keeps state between calls, so each caller borrows its own.
var diacriticPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.Predicate(isCombiningDiacritic)),
			norm.NFC,
		)
	},
}

func isCombiningDiacritic(r rune) bool { return r >= 0x0300 && r <= 0x036F }

// RemoveAlphabeticDiacritics strips Latin and Greek combining diacritics
// (ἄήé → αηe). Kana sound marks are outside the stripped block and survive
// the round trip through NFD.
func RemoveAlphabeticDiacritics(s string) string {
	t := diacriticPool.Get().(transform.Transformer)
	defer func() {
		t.Reset()
		diacriticPool.Put(t)
	}()
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Decapitalize lowercases s.
func Decapitalize(s string) string {
	return cases.Lower(language.Und).String(s)
}

// CapitalizeFirstLetter uppercases the first character of s.
func CapitalizeFirstLetter(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

// NormalizeCJKCompatibilityCharacters expands squared katakana words and
// units from the CJK Compatibility block (㌀ → アパート, ㎏ → kg).
func NormalizeCJKCompatibilityCharacters(s string) string {
	if !strings.ContainsFunc(s, isCJKCompatibility) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if isCJKCompatibility(r) {
			b.WriteString(norm.NFKC.String(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isCJKCompatibility(r rune) bool { return r >= 0x3300 && r <= 0x33FF }

// StandardizeKanji replaces traditional and variant kanji with the form used
// in modern dictionaries (萬 → 万).
func StandardizeKanji(s string) string {
	return strings.Map(func(r rune) rune {
		if std, ok := kanjiVariants[r]; ok {
			return std
		}
		return r
	}, s)
}

var kanjiVariants = map[rune]rune{
	'萬': '万', '與': '与', '兩': '両', '亞': '亜', '佛': '仏', '來': '来',
	'倂': '併', '假': '仮', '傳': '伝', '價': '価', '儉': '倹', '兒': '児',
	'內': '内', '圓': '円', '冨': '富', '劍': '剣', '劑': '剤', '勞': '労',
	'區': '区', '參': '参', '單': '単', '國': '国', '圍': '囲', '團': '団',
	'壓': '圧', '壘': '塁', '壞': '壊', '壯': '壮', '聲': '声', '壹': '壱',
	'處': '処', '實': '実', '寢': '寝', '將': '将', '專': '専', '對': '対',
	'屆': '届', '屬': '属', '嶽': '岳', '巖': '巌', '廣': '広', '廳': '庁',
	'彈': '弾', '從': '従', '德': '徳', '應': '応', '戀': '恋', '戰': '戦',
	'戲': '戯', '拔': '抜', '擇': '択', '擔': '担', '據': '拠', '收': '収',
	'效': '効', '敎': '教', '數': '数', '斷': '断', '晝': '昼', '會': '会',
	'條': '条', '樂': '楽', '樣': '様', '權': '権', '歐': '欧', '歸': '帰',
	'歲': '歳', '殘': '残', '氣': '気', '沒': '没', '淨': '浄', '溫': '温',
	'滿': '満', '濕': '湿', '燈': '灯', '爭': '争', '狀': '状', '獨': '独',
	'獻': '献', '畫': '画', '當': '当', '發': '発', '盡': '尽', '眞': '真',
	'禮': '礼', '稱': '称', '穩': '穏', '經': '経', '縣': '県', '總': '総',
	'聽': '聴', '肅': '粛', '舊': '旧', '藝': '芸', '號': '号', '蟲': '虫',
	'裝': '装', '觀': '観', '覺': '覚', '譯': '訳', '讀': '読', '變': '変',
	'豐': '豊', '賣': '売', '轉': '転', '辭': '辞', '遲': '遅', '醫': '医',
	'鐵': '鉄', '關': '関', '險': '険', '隨': '随', '雜': '雑', '靈': '霊',
	'顯': '顕', '驗': '験', '體': '体', '髮': '髪', '鷄': '鶏', '麥': '麦',
	'黃': '黄', '點': '点', '齊': '斉', '齒': '歯', '學': '学', '寶': '宝',
	'龍': '竜',
}
