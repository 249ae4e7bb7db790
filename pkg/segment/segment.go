// Package segment splits running Japanese text into words with the kagome
// morphological analyzer and the IPA dictionary. Lookup uses the word
// boundaries as scan starts; kagome's own base forms are reported for
// reference only and never replace rule-based deinflection.
package segment

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is one word of the input. Start and End are byte offsets.
type Token struct {
	Surface  string   `json:"surface"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	BaseForm string   `json:"base_form,omitempty"`
	Reading  string   `json:"reading,omitempty"`
	POS      []string `json:"pos,omitempty"`
	Known    bool     `json:"known"`
}

// Segmenter wraps a kagome tokenizer. It is safe for concurrent use.
type Segmenter struct {
	t *tokenizer.Tokenizer
}

// New loads the IPA dictionary.
func New() (*Segmenter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("load kagome tokenizer: %w", err)
	}
	return &Segmenter{t: t}, nil
}

// Segment tokenizes text. Whitespace and dummy tokens are dropped.
func (s *Segmenter) Segment(text string) []Token {
	var out []Token
	for _, kt := range s.t.Tokenize(text) {
		if kt.Class == tokenizer.DUMMY || strings.TrimSpace(kt.Surface) == "" {
			continue
		}
		tok := Token{
			Surface: kt.Surface,
			Start:   kt.Position,
			End:     kt.Position + len(kt.Surface),
			POS:     kt.POS(),
			Known:   kt.Class == tokenizer.KNOWN || kt.Class == tokenizer.USER,
		}
		if base, ok := kt.BaseForm(); ok && base != "*" {
			tok.BaseForm = base
		}
		if r, ok := kt.Reading(); ok && r != "*" {
			tok.Reading = r
		}
		out = append(out, tok)
	}
	return out
}
