package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/hazyhaar/yomikata/pkg/termdb"
)

func init() {
	Register(&csvAdapter{
		id:   "csv",
		desc: "UTF-8 CSV with a header naming expression, reading, tags, glossary and score columns",
	})
	Register(&csvAdapter{
		id:       "csv-sjis",
		desc:     "Shift_JIS CSV with the same columns as csv",
		encoding: "shift_jis",
	})
}

// csvAdapter imports a headword list. The dictionary is named after the
// file. Glossary entries are separated by ";" and tags by spaces.
type csvAdapter struct {
	id, desc, encoding string
}

func (a *csvAdapter) ID() string          { return a.id }
func (a *csvAdapter) Description() string { return a.desc }
func (a *csvAdapter) DefaultURL() string  { return "" }
func (a *csvAdapter) License() string     { return "" }

func (a *csvAdapter) Import(ctx context.Context, source string, store *termdb.Store) (Report, error) {
	tmp, err := os.MkdirTemp("", "yomikata-import-*")
	if err != nil {
		return Report{}, err
	}
	defer os.RemoveAll(tmp)

	local, err := localCopy(ctx, source, tmp)
	if err != nil {
		return Report{}, err
	}
	f, err := os.Open(local)
	if err != nil {
		return Report{}, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(local), filepath.Ext(local))
	terms, err := readTermCSV(f, a.encoding)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", filepath.Base(local), err)
	}
	for i := range terms {
		terms[i].Dictionary = name
	}
	n, err := replaceDictionary(ctx, store, name, terms)
	if err != nil {
		return Report{}, err
	}
	return Report{Dictionary: name, Terms: n}, nil
}

var errNoExpressionColumn = errors.New(`header has no "expression" column`)

func readTermCSV(src io.Reader, encoding string) ([]termdb.Term, error) {
	if encoding != "" && !strings.EqualFold(encoding, "utf-8") {
		e, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}
		src = transform.NewReader(src, e.NewDecoder())
	}

	r := csv.NewReader(src)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := col["expression"]; !ok {
		return nil, errNoExpressionColumn
	}
	field := func(rec []string, name string) string {
		if i, ok := col[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var out []termdb.Term
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t := termdb.Term{
			Expression: field(rec, "expression"),
			Reading:    field(rec, "reading"),
			Tags:       strings.Fields(field(rec, "tags")),
		}
		if t.Expression == "" {
			continue
		}
		for _, g := range strings.Split(field(rec, "glossary"), ";") {
			if g = strings.TrimSpace(g); g != "" {
				t.Glossary = append(t.Glossary, g)
			}
		}
		if s := field(rec, "score"); s != "" {
			line, _ := r.FieldPos(0)
			if t.Score, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("line %d: score %q: %w", line, s, err)
			}
		}
		out = append(out, t)
	}
	return out, nil
}
