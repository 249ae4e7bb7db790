package importer

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hazyhaar/yomikata/pkg/termdb"
)

func init() {
	Register(&yomitanAdapter{
		id:      "jmdict",
		desc:    "JMdict (English glosses) packaged as a Yomitan dictionary",
		url:     "https://github.com/yomidevs/jmdict-yomitan/releases/latest/download/JMdict_english.zip",
		license: "CC BY-SA 4.0",
	})
	Register(&yomitanAdapter{
		id:   "yomitan-zip",
		desc: "Any Yomitan or Yomichan dictionary archive given by path or URL",
	})
}

// yomitanAdapter reads the term banks of a Yomitan dictionary archive. The
// dictionary is named after the title in index.json.
type yomitanAdapter struct {
	id, desc, url, license string
}

func (a *yomitanAdapter) ID() string          { return a.id }
func (a *yomitanAdapter) Description() string { return a.desc }
func (a *yomitanAdapter) DefaultURL() string  { return a.url }
func (a *yomitanAdapter) License() string     { return a.license }

func (a *yomitanAdapter) Import(ctx context.Context, source string, store *termdb.Store) (Report, error) {
	tmp, err := os.MkdirTemp("", "yomikata-import-*")
	if err != nil {
		return Report{}, err
	}
	defer os.RemoveAll(tmp)

	local, err := localCopy(ctx, source, tmp)
	if err != nil {
		return Report{}, err
	}
	title, terms, err := readYomitanZip(local)
	if err != nil {
		return Report{}, err
	}
	if title == "" {
		title = a.id
	}
	for i := range terms {
		terms[i].Dictionary = title
	}
	n, err := replaceDictionary(ctx, store, title, terms)
	if err != nil {
		return Report{}, err
	}
	return Report{Dictionary: title, Terms: n}, nil
}

var errNoTermBanks = errors.New("no term_bank_*.json in archive")

func readYomitanZip(file string) (string, []termdb.Term, error) {
	r, err := zip.OpenReader(file)
	if err != nil {
		return "", nil, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	var (
		title string
		terms []termdb.Term
		banks int
	)
	for _, f := range r.File {
		base := path.Base(f.Name)
		switch {
		case base == "index.json":
			data, err := readZipEntry(f)
			if err != nil {
				return "", nil, err
			}
			title = gjson.GetBytes(data, "title").String()
		case strings.HasPrefix(base, "term_bank_") && strings.HasSuffix(base, ".json"):
			data, err := readZipEntry(f)
			if err != nil {
				return "", nil, err
			}
			bank, err := parseTermBank(data)
			if err != nil {
				return "", nil, fmt.Errorf("%s: %w", f.Name, err)
			}
			terms = append(terms, bank...)
			banks++
		}
	}
	if banks == 0 {
		return "", nil, fmt.Errorf("%s: %w", file, errNoTermBanks)
	}
	return title, terms, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read zip entry %s: %w", f.Name, err)
	}
	return data, nil
}

// parseTermBank decodes rows of the form
// [expression, reading, definitionTags, rules, score, glossary, sequence, termTags].
// Rows without an expression are skipped.
func parseTermBank(data []byte) ([]termdb.Term, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.New("term bank is not an array")
	}

	var out []termdb.Term
	root.ForEach(func(_, row gjson.Result) bool {
		f := row.Array()
		if len(f) < 6 || f[0].String() == "" {
			return true
		}
		out = append(out, termdb.Term{
			Expression: f[0].String(),
			Reading:    f[1].String(),
			Tags:       strings.Fields(f[3].String()),
			Score:      int(f[4].Int()),
			Glossary:   glossary(f[5]),
		})
		return true
	})
	return out, nil
}

func glossary(v gjson.Result) []string {
	var out []string
	v.ForEach(func(_, g gjson.Result) bool {
		var s string
		switch {
		case g.Type == gjson.String:
			s = g.Str
		case g.Get("type").Str == "text":
			s = g.Get("text").Str
		case g.Get("type").Str == "structured-content":
			s = plainText(g.Get("content"))
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

// plainText flattens Yomitan structured content to its text nodes.
func plainText(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return v.Str
	case v.IsArray():
		var b strings.Builder
		for _, c := range v.Array() {
			b.WriteString(plainText(c))
		}
		return b.String()
	case v.IsObject():
		return plainText(v.Get("content"))
	}
	return ""
}
