package deinflect

import "sync"

// Japanese returns the built-in Japanese table. It is built once and shared.
var Japanese = sync.OnceValue(func() *Table {
	return MustBuild(JapaneseSpec())
})

// Godan stem rows: inflected stem kana and the dictionary ending it comes
// from.
var (
	aRow = [][2]string{{"わ", "う"}, {"か", "く"}, {"が", "ぐ"}, {"さ", "す"}, {"た", "つ"}, {"な", "ぬ"}, {"ば", "ぶ"}, {"ま", "む"}, {"ら", "る"}}
	iRow = [][2]string{{"い", "う"}, {"き", "く"}, {"ぎ", "ぐ"}, {"し", "す"}, {"ち", "つ"}, {"に", "ぬ"}, {"び", "ぶ"}, {"み", "む"}, {"り", "る"}}
	eRow = [][2]string{{"え", "う"}, {"け", "く"}, {"げ", "ぐ"}, {"せ", "す"}, {"て", "つ"}, {"ね", "ぬ"}, {"べ", "ぶ"}, {"め", "む"}, {"れ", "る"}}
	oRow = [][2]string{{"おう", "う"}, {"こう", "く"}, {"ごう", "ぐ"}, {"そう", "す"}, {"とう", "つ"}, {"のう", "ぬ"}, {"ぼう", "ぶ"}, {"もう", "む"}, {"ろう", "る"}}
)

// JapaneseConditions is the Japanese condition universe.
func JapaneseConditions() []ConditionDef {
	return []ConditionDef{
		{Tag: "v", Name: "Verb", SubConditions: []string{"v1", "v5", "vk", "vs", "vz"}},
		{Tag: "v1", Name: "Ichidan verb", SubConditions: []string{"v1d", "v1p"}},
		{Tag: "v1d", Name: "Ichidan verb, dictionary form", DictionaryForm: true},
		{Tag: "v1p", Name: "Ichidan verb, progressive or perfect form"},
		{Tag: "v5", Name: "Godan verb", SubConditions: []string{"v5d", "v5s"}},
		{Tag: "v5d", Name: "Godan verb, dictionary form", DictionaryForm: true},
		{Tag: "v5s", Name: "Godan verb, short causative form", SubConditions: []string{"v5ss", "v5sp"}},
		{Tag: "v5ss", Name: "Godan verb, short causative form having abbreviation"},
		{Tag: "v5sp", Name: "Godan verb, short causative form not having abbreviation"},
		{Tag: "vk", Name: "Kuru verb", DictionaryForm: true},
		{Tag: "vs", Name: "Suru verb", DictionaryForm: true},
		{Tag: "vz", Name: "Zuru verb", DictionaryForm: true},
		{Tag: "adj-i", Name: "Adjective with i ending", DictionaryForm: true},
		{Tag: "-masu", Name: "Polite -masu ending"},
		{Tag: "-masen", Name: "Polite negative -masen ending"},
		{Tag: "-te", Name: "Intermediate -te endings for progressive or perfect tense"},
		{Tag: "-ba", Name: "Intermediate -ba endings for conditional contraction"},
		{Tag: "-ku", Name: "Intermediate -ku endings for adverbs"},
		{Tag: "-ta", Name: "-ta past form ending"},
		{Tag: "-n", Name: "-n negative ending"},
		{Tag: "-nasai", Name: "Intermediate -nasai ending (polite imperative)"},
		{Tag: "-ya", Name: "Intermediate -ya ending (conditional contraction)"},
	}
}

// JapaneseSpec returns a fresh copy of the built-in Japanese rule literals.
func JapaneseSpec() LanguageSpec {
	var none []string
	var (
		v1      = []string{"v1"}
		v1p     = []string{"v1p"}
		v5      = []string{"v5"}
		v5d     = []string{"v5d"}
		v5ss    = []string{"v5ss"}
		v5sp    = []string{"v5sp"}
		vk      = []string{"vk"}
		vs      = []string{"vs"}
		vz      = []string{"vz"}
		adjI    = []string{"adj-i"}
		masu    = []string{"-masu"}
		masen   = []string{"-masen"}
		te      = []string{"-te"}
		ba      = []string{"-ba"}
		ku      = []string{"-ku"}
		ta      = []string{"-ta"}
		n       = []string{"-n"}
		nasai   = []string{"-nasai"}
		ya      = []string{"-ya"}
		anyVerb = []string{"v1", "v5", "vk", "vs", "vz"}
	)

	rows := func(row [][2]string, suffix, deinflected string, in, out []string) []RuleSpec {
		rules := make([]RuleSpec, len(row))
		for i, r := range row {
			rules[i] = SuffixInflection(r[0]+suffix, r[1]+deinflected, in, out)
		}
		return rules
	}

	// continuative covers endings attached to the masu stem.
	continuative := func(suffix string, out []string) []RuleSpec {
		rules := []RuleSpec{SuffixInflection(suffix, "る", v1, out)}
		rules = append(rules, rows(iRow, suffix, "", v5, out)...)
		return append(rules,
			SuffixInflection("じ"+suffix, "ずる", vz, out),
			SuffixInflection("し"+suffix, "する", vs, out),
			SuffixInflection("為"+suffix, "為る", vs, out),
			SuffixInflection("き"+suffix, "くる", vk, out),
			SuffixInflection("来"+suffix, "来る", vk, out),
			SuffixInflection("來"+suffix, "來る", vk, out),
		)
	}

	// perfective covers the euphonic te/ta stems: t and d are the voiceless
	// and voiced forms of the ending.
	perfective := func(t, d string, out []string) []RuleSpec {
		return []RuleSpec{
			SuffixInflection(t, "る", v1, out),
			SuffixInflection("い"+t, "く", v5, out),
			SuffixInflection("い"+d, "ぐ", v5, out),
			SuffixInflection("し"+t, "す", v5, out),
			SuffixInflection("っ"+t, "う", v5, out),
			SuffixInflection("っ"+t, "つ", v5, out),
			SuffixInflection("っ"+t, "る", v5, out),
			SuffixInflection("ん"+d, "ぬ", v5, out),
			SuffixInflection("ん"+d, "ぶ", v5, out),
			SuffixInflection("ん"+d, "む", v5, out),
			SuffixInflection("じ"+t, "ずる", vz, out),
			SuffixInflection("し"+t, "する", vs, out),
			SuffixInflection("為"+t, "為る", vs, out),
			SuffixInflection("き"+t, "くる", vk, out),
			SuffixInflection("来"+t, "来る", vk, out),
			SuffixInflection("來"+t, "來る", vk, out),
			SuffixInflection("いっ"+t, "いく", v5, out),
			SuffixInflection("行っ"+t, "行く", v5, out),
			SuffixInflection("逝っ"+t, "逝く", v5, out),
			SuffixInflection("往っ"+t, "往く", v5, out),
			SuffixInflection("おう"+t, "おう", v5, out),
			SuffixInflection("こう"+t, "こう", v5, out),
			SuffixInflection("そう"+t, "そう", v5, out),
			SuffixInflection("とう"+t, "とう", v5, out),
			SuffixInflection("請う"+t, "請う", v5, out),
			SuffixInflection("乞う"+t, "乞う", v5, out),
			SuffixInflection("問う"+t, "問う", v5, out),
			SuffixInflection("のたもう"+t, "のたまう", v5, out),
		}
	}

	// contracted covers ちゃう/ちまう style contractions of -te shimau.
	contracted := func(cha, ja string) []RuleSpec {
		return []RuleSpec{
			SuffixInflection(cha, "る", v1, v5),
			SuffixInflection("い"+ja, "ぐ", v5, v5),
			SuffixInflection("い"+cha, "く", v5, v5),
			SuffixInflection("し"+cha, "す", v5, v5),
			SuffixInflection("っ"+cha, "う", v5, v5),
			SuffixInflection("っ"+cha, "く", v5, v5),
			SuffixInflection("っ"+cha, "つ", v5, v5),
			SuffixInflection("っ"+cha, "る", v5, v5),
			SuffixInflection("ん"+ja, "ぬ", v5, v5),
			SuffixInflection("ん"+ja, "ぶ", v5, v5),
			SuffixInflection("ん"+ja, "む", v5, v5),
			SuffixInflection("じ"+cha, "ずる", vz, v5),
			SuffixInflection("し"+cha, "する", vs, v5),
			SuffixInflection("為"+cha, "為る", vs, v5),
			SuffixInflection("き"+cha, "くる", vk, v5),
			SuffixInflection("来"+cha, "来る", vk, v5),
			SuffixInflection("來"+cha, "來る", vk, v5),
		}
	}

	concat := func(parts ...[]RuleSpec) []RuleSpec {
		var out []RuleSpec
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}

	return LanguageSpec{
		Language:   "ja",
		Conditions: JapaneseConditions(),
		Transforms: []TransformSpec{
			{
				Name:        "-ba",
				Description: "Conditional form; shows that the previous stated condition's establishment is the condition for the latter stated condition to occur.\nUsage: Attach ば to the hypothetical/realis form (kateikei/izenkei) of verbs and i-adjectives.",
				Rules: concat(
					[]RuleSpec{SuffixInflection("ければ", "い", adjI, ba)},
					rows(eRow[:8], "ば", "", v5, ba),
					[]RuleSpec{SuffixInflection("れば", "る", anyVerb, ba)},
				),
			},
			{
				Name:        "-ya",
				Description: "Contraction of -ba.",
				Rules: []RuleSpec{
					SuffixInflection("けりゃ", "ければ", ba, ya),
					SuffixInflection("きゃ", "ければ", ba, ya),
					SuffixInflection("や", "えば", ba, ya),
					SuffixInflection("きゃ", "けば", ba, ya),
					SuffixInflection("ぎゃ", "げば", ba, ya),
					SuffixInflection("しゃ", "せば", ba, ya),
					SuffixInflection("ちゃ", "てば", ba, ya),
					SuffixInflection("にゃ", "ねば", ba, ya),
					SuffixInflection("びゃ", "べば", ba, ya),
					SuffixInflection("みゃ", "めば", ba, ya),
					SuffixInflection("りゃ", "れば", ba, ya),
				},
			},
			{
				Name:        "-cha",
				Description: "Contraction of -te wa (ては).",
				Rules: []RuleSpec{
					SuffixInflection("ちゃ", "る", v1, none),
					SuffixInflection("いじゃ", "ぐ", v5, none),
					SuffixInflection("いちゃ", "く", v5, none),
					SuffixInflection("しちゃ", "す", v5, none),
					SuffixInflection("っちゃ", "う", v5, none),
					SuffixInflection("っちゃ", "く", v5, none),
					SuffixInflection("っちゃ", "つ", v5, none),
					SuffixInflection("っちゃ", "る", v5, none),
					SuffixInflection("んじゃ", "ぬ", v5, none),
					SuffixInflection("んじゃ", "ぶ", v5, none),
					SuffixInflection("んじゃ", "む", v5, none),
					SuffixInflection("じちゃ", "ずる", vz, none),
					SuffixInflection("しちゃ", "する", vs, none),
					SuffixInflection("為ちゃ", "為る", vs, none),
					SuffixInflection("きちゃ", "くる", vk, none),
					SuffixInflection("来ちゃ", "来る", vk, none),
					SuffixInflection("來ちゃ", "來る", vk, none),
				},
			},
			{
				Name:        "-chimau",
				Description: "Contraction of -te shimau; the action was completed, often with regret.",
				Rules:       concat(contracted("ちゃう", "じゃう"), contracted("ちまう", "じまう")),
			},
			{
				Name:        "-nasai",
				Description: "Polite imperative.\nUsage: Attach なさい after the continuative form (ren'youkei) of verbs.",
				Rules:       continuative("なさい", nasai),
			},
			{
				Name:        "-sou",
				Description: "Appearing that; looking like.\nUsage: Attach そう to the continuative form of verbs or the stem of adjectives.",
				Rules:       concat([]RuleSpec{SuffixInflection("そう", "い", adjI, none)}, continuative("そう", none)),
			},
			{
				Name:        "-sugiru",
				Description: "Shows something is in excess.\nUsage: Attach すぎる to the continuative form of verbs or the stem of adjectives.",
				Rules: concat(
					[]RuleSpec{
						SuffixInflection("すぎる", "い", adjI, v1),
						SuffixInflection("過ぎる", "い", adjI, v1),
					},
					continuative("すぎる", v1),
					continuative("過ぎる", v1),
				),
			},
			{
				Name:        "-ta",
				Description: "Past tense; completion of an action.\nUsage: Attach た to the continuative form of verbs after euphonic change, or かった to the stem of i-adjectives.",
				Rules: concat(
					[]RuleSpec{SuffixInflection("かった", "い", adjI, ta)},
					perfective("た", "だ", ta),
					[]RuleSpec{
						SuffixInflection("ました", "ます", masu, ta),
						SuffixInflection("ませんでした", "ません", masen, ta),
					},
				),
			},
			{
				Name:        "-tai",
				Description: "Expresses the desire to do something.\nUsage: Attach たい to the continuative form of verbs.",
				Rules:       continuative("たい", adjI),
			},
			{
				Name:        "-tara",
				Description: "Conditional; when or if something happens.\nUsage: Attach たら to the continuative form of verbs after euphonic change, or かったら to the stem of i-adjectives.",
				Rules: concat(
					[]RuleSpec{SuffixInflection("かったら", "い", adjI, none)},
					perfective("たら", "だら", none),
					[]RuleSpec{SuffixInflection("ましたら", "ます", masu, none)},
				),
			},
			{
				Name:        "-tari",
				Description: "Lists actions as examples among several.\nUsage: Attach たり to the continuative form of verbs after euphonic change, or かったり to the stem of i-adjectives.",
				Rules: concat(
					[]RuleSpec{SuffixInflection("かったり", "い", adjI, none)},
					perfective("たり", "だり", none),
					[]RuleSpec{SuffixInflection("ましたり", "ます", masu, none)},
				),
			},
			{
				Name:        "-te",
				Description: "Te form; links clauses and forms requests.\nUsage: Attach て to the continuative form of verbs after euphonic change, or くて to the stem of i-adjectives.",
				Rules: concat(
					[]RuleSpec{SuffixInflection("くて", "い", adjI, te)},
					perfective("て", "で", te),
					[]RuleSpec{SuffixInflection("まして", "ます", masu, te)},
				),
			},
			{
				Name:        "-te iru",
				Description: "Action in progress or resulting state.\nUsage: Attach いる to the te form of verbs. い can be dropped in speech.",
				Rules: []RuleSpec{
					SuffixInflection("ている", "て", te, v1),
					SuffixInflection("でいる", "で", te, v1),
					SuffixInflection("てる", "て", te, v1p),
					SuffixInflection("でる", "で", te, v1p),
					SuffixInflection("ておる", "て", te, v5),
					SuffixInflection("でおる", "で", te, v5),
					SuffixInflection("とる", "て", te, v5),
					SuffixInflection("どる", "で", te, v5),
				},
			},
			{
				Name:        "-te oku",
				Description: "Doing something in preparation or leaving something as it is.\nUsage: Attach おく to the te form of verbs.",
				Rules: []RuleSpec{
					SuffixInflection("ておく", "て", te, v5),
					SuffixInflection("でおく", "で", te, v5),
					SuffixInflection("とく", "て", te, v5),
					SuffixInflection("どく", "で", te, v5),
					SuffixInflection("ないでおく", "ない", adjI, v5),
					SuffixInflection("ないどく", "ない", adjI, v5),
				},
			},
			{
				Name:        "-zu",
				Description: "Negative form of verbs; without doing.\nUsage: Attach ず to the irrealis form (mizenkei) of verbs.",
				Rules: []RuleSpec{
					SuffixInflection("ず", "る", v1, none),
					CustomInflection("[かがさたなばまらわ]ず$", CustomFuncs["negative-zu"], v5, none),
					SuffixInflection("ぜず", "ずる", vz, none),
					SuffixInflection("せず", "する", vs, none),
					SuffixInflection("為ず", "為る", vs, none),
					SuffixInflection("こず", "くる", vk, none),
					SuffixInflection("来ず", "来る", vk, none),
					SuffixInflection("來ず", "來る", vk, none),
				},
			},
			{
				Name:        "-nu",
				Description: "Classical negative form of verbs.\nUsage: Attach ぬ to the irrealis form (mizenkei) of verbs.",
				Rules: []RuleSpec{
					SuffixInflection("ぬ", "る", v1, none),
					CustomInflection("[かがさたなばまらわ]ぬ$", CustomFuncs["negative-nu"], v5, none),
					SuffixInflection("ぜぬ", "ずる", vz, none),
					SuffixInflection("せぬ", "する", vs, none),
					SuffixInflection("為ぬ", "為る", vs, none),
					SuffixInflection("こぬ", "くる", vk, none),
					SuffixInflection("来ぬ", "来る", vk, none),
					SuffixInflection("來ぬ", "來る", vk, none),
				},
			},
			{
				Name:        "-n",
				Description: "Colloquial negative form of verbs.\nUsage: Attach ん to the irrealis form (mizenkei) of verbs.",
				Rules: []RuleSpec{
					SuffixInflection("ん", "る", v1, n),
					CustomInflection("[かがさたなばまらわ]ん$", CustomFuncs["negative-n"], v5, n),
					SuffixInflection("ぜん", "ずる", vz, n),
					SuffixInflection("せん", "する", vs, n),
					SuffixInflection("為ん", "為る", vs, n),
					SuffixInflection("こん", "くる", vk, n),
					SuffixInflection("来ん", "来る", vk, n),
					SuffixInflection("來ん", "來る", vk, n),
				},
			},
			{
				Name:        "-masu",
				Description: "Polite conjugation of verbs.\nUsage: Attach ます to the continuative form of verbs.",
				Rules: concat(
					continuative("ます", masu),
					[]RuleSpec{
						SuffixInflection("くださいます", "くださる", v5, masu),
						SuffixInflection("いらっしゃいます", "いらっしゃる", v5, masu),
						SuffixInflection("おっしゃいます", "おっしゃる", v5, masu),
						SuffixInflection("なさいます", "なさる", v5, masu),
						SuffixInflection("ございます", "ござる", v5, masu),
					},
				),
			},
			{
				Name:        "negative",
				Description: "Negation of verbs and adjectives.\nUsage: Attach ない to the irrealis form (mizenkei) of verbs, くない to the stem of i-adjectives.",
				Rules: concat(
					[]RuleSpec{
						SuffixInflection("くない", "い", adjI, adjI),
						SuffixInflection("ない", "る", v1, adjI),
					},
					rows(aRow, "ない", "", v5, adjI),
					[]RuleSpec{
						SuffixInflection("じない", "ずる", vz, adjI),
						SuffixInflection("しない", "する", vs, adjI),
						SuffixInflection("為ない", "為る", vs, adjI),
						SuffixInflection("こない", "くる", vk, adjI),
						SuffixInflection("来ない", "来る", vk, adjI),
						SuffixInflection("來ない", "來る", vk, adjI),
						Inflection("ない", "ある", v5, adjI, WholeWord),
						SuffixInflection("ません", "ます", masu, masen),
					},
				),
			},
			{
				Name:        "passive",
				Description: "Passive voice; the subject undergoes the action.\nUsage: Attach れる to the irrealis form (mizenkei) of godan verbs.",
				Rules: concat(
					rows(aRow, "れる", "", v5d, v1),
					[]RuleSpec{
						SuffixInflection("ざれる", "ずる", vz, v1),
						SuffixInflection("される", "する", vs, v1),
						SuffixInflection("為れる", "為る", vs, v1),
					},
				),
			},
			{
				Name:        "causative",
				Description: "Making or letting someone do something.\nUsage: Attach させる to the irrealis form of ichidan verbs and せる to that of godan verbs.",
				Rules: concat(
					[]RuleSpec{SuffixInflection("させる", "る", v1, v1)},
					rows(aRow, "せる", "", v5, v1),
					[]RuleSpec{
						SuffixInflection("じさせる", "ずる", vz, v1),
						SuffixInflection("ぜさせる", "ずる", vz, v1),
						SuffixInflection("させる", "する", vs, v1),
						SuffixInflection("為せる", "為る", vs, v1),
						SuffixInflection("こさせる", "くる", vk, v1),
						SuffixInflection("来させる", "来る", vk, v1),
						SuffixInflection("來させる", "來る", vk, v1),
					},
				),
			},
			{
				Name:        "short causative",
				Description: "Contraction of the causative form.\nUsage: Attach す to the irrealis form of godan verbs, さす to that of ichidan verbs.",
				Rules: concat(
					[]RuleSpec{SuffixInflection("さす", "る", v1, v5ss)},
					rows(aRow, "す", "", v5d, v5sp),
					[]RuleSpec{
						SuffixInflection("じさす", "ずる", vz, v5ss),
						SuffixInflection("ぜさす", "ずる", vz, v5ss),
						SuffixInflection("さす", "する", vs, v5ss),
						SuffixInflection("為す", "為る", vs, v5ss),
						SuffixInflection("こさす", "くる", vk, v5ss),
						SuffixInflection("来さす", "来る", vk, v5ss),
						SuffixInflection("來さす", "來る", vk, v5ss),
					},
				),
			},
			{
				Name:        "potential",
				Description: "Indicates a state of being able to do something.\nUsage: Attach れる to the realis form of godan verbs. Ichidan verbs dropping ら is colloquial.",
				Rules: concat(
					rows(eRow[:8], "る", "", v5d, v1),
					[]RuleSpec{
						SuffixInflection("(?<!ら)れる", "る", v5d, v1).WithLookaround(),
						SuffixInflection("(?<!ら)れる", "る", v1, v1).WithLookaround(),
						SuffixInflection("これる", "くる", vk, v1),
						SuffixInflection("来れる", "来る", vk, v1),
						SuffixInflection("來れる", "來る", vk, v1),
					},
				),
			},
			{
				Name:        "potential or passive",
				Description: "Potential or passive form of ichidan verbs and irregulars.\nUsage: Attach られる to the irrealis form (mizenkei) of ichidan verbs.",
				Rules: []RuleSpec{
					SuffixInflection("られる", "る", v1, v1),
					SuffixInflection("ざれる", "ずる", vz, v1),
					SuffixInflection("ぜられる", "ずる", vz, v1),
					SuffixInflection("せられる", "する", vs, v1),
					SuffixInflection("為られる", "為る", vs, v1),
					SuffixInflection("こられる", "くる", vk, v1),
					SuffixInflection("来られる", "来る", vk, v1),
					SuffixInflection("來られる", "來る", vk, v1),
				},
			},
			{
				Name:        "imperative",
				Description: "Command or request.\nUsage: Attach ろ or よ to the irrealis form of ichidan verbs; use the imperative form (meireikei) of godan verbs.",
				Rules: concat(
					[]RuleSpec{
						SuffixInflection("ろ", "る", v1, none),
						SuffixInflection("よ", "る", v1, none),
					},
					rows(eRow, "", "", v5, none),
					[]RuleSpec{
						SuffixInflection("じろ", "ずる", vz, none),
						SuffixInflection("ぜよ", "ずる", vz, none),
						SuffixInflection("しろ", "する", vs, none),
						SuffixInflection("せよ", "する", vs, none),
						SuffixInflection("為ろ", "為る", vs, none),
						SuffixInflection("為よ", "為る", vs, none),
						SuffixInflection("来い", "来る", vk, none),
						SuffixInflection("來い", "來る", vk, none),
						Inflection("こい", "くる", vk, none, WholeWord),
						Inflection("いらっしゃい", "いらっしゃる", v5, none, WholeWord),
					},
				),
			},
			{
				Name:        "volitional",
				Description: "Expresses the will or invitation to do something.\nUsage: Attach よう to the irrealis form of ichidan verbs, う to the volitional stem of godan verbs.",
				Rules: concat(
					[]RuleSpec{SuffixInflection("よう", "る", v1, none)},
					rows(oRow, "", "", v5, none),
					[]RuleSpec{
						SuffixInflection("じよう", "ずる", vz, none),
						SuffixInflection("しよう", "する", vs, none),
						SuffixInflection("為よう", "為る", vs, none),
						SuffixInflection("こよう", "くる", vk, none),
						SuffixInflection("来よう", "来る", vk, none),
						SuffixInflection("來よう", "來る", vk, none),
						SuffixInflection("ましょう", "ます", masu, none),
						SuffixInflection("かろう", "い", adjI, none),
					},
				),
			},
			{
				Name:        "-ku",
				Description: "Adverbial form of i-adjectives.",
				Rules:       []RuleSpec{SuffixInflection("く", "い", adjI, ku)},
			},
			{
				Name:        "-sa",
				Description: "Nominalizes an i-adjective (degree).",
				Rules:       []RuleSpec{SuffixInflection("さ", "い", adjI, none)},
			},
			{
				Name:        "honorific prefix",
				Description: "Polite prefixes お, ご and 御.",
				Rules:       []RuleSpec{Inflection("[おご御]", "", none, none, Prefix)},
			},
		},
	}
}
