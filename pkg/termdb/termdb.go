// Package termdb stores dictionary headwords in SQLite so deinflection
// candidates can be checked against real entries.
package termdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Term is one dictionary entry. Tags holds the deinflection condition tags
// of the headword (v1, v5, adj-i, ...) as the dictionary declares them.
type Term struct {
	ID         int64    `json:"id"`
	Dictionary string   `json:"dictionary"`
	Expression string   `json:"expression"`
	Reading    string   `json:"reading,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Glossary   []string `json:"glossary"`
	Score      int      `json:"score"`
}

// DictInfo summarizes one imported dictionary.
type DictInfo struct {
	Name    string `json:"name"`
	Entries int    `json:"entries"`
}

// Store is a SQLite-backed term store.
type Store struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS terms (
		id          INTEGER PRIMARY KEY,
		dictionary  TEXT NOT NULL,
		expression  TEXT NOT NULL,
		reading     TEXT NOT NULL DEFAULT '',
		tags        TEXT NOT NULL DEFAULT '',
		glossary    TEXT NOT NULL DEFAULT '[]',
		score       INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS terms_expression ON terms(expression)`,
	`CREATE INDEX IF NOT EXISTS terms_reading ON terms(reading)`,
	`CREATE INDEX IF NOT EXISTS terms_dictionary ON terms(dictionary)`,
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open term db: %w", err)
	}
	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create term schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert adds terms in one transaction and returns how many were written.
func (s *Store) Insert(ctx context.Context, terms []Term) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO terms
		(dictionary, expression, reading, tags, glossary, score)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range terms {
		if t.Expression == "" {
			return 0, fmt.Errorf("term %d: empty expression", i)
		}
		gloss, err := json.Marshal(nonNil(t.Glossary))
		if err != nil {
			return 0, fmt.Errorf("term %q glossary: %w", t.Expression, err)
		}
		if _, err := stmt.ExecContext(ctx, t.Dictionary, t.Expression, t.Reading,
			strings.Join(t.Tags, " "), string(gloss), t.Score); err != nil {
			return 0, fmt.Errorf("insert %q: %w", t.Expression, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}
	return len(terms), nil
}

// Find returns the terms whose expression or reading is text, best score
// first.
func (s *Store) Find(ctx context.Context, text string) ([]Term, error) {
	found, err := s.FindAny(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return found[text], nil
}

// maxParams keeps IN lists well below SQLite's host parameter limit.
const maxParams = 200

// FindAny looks up many texts at once. The result maps each text that
// matched an expression or a reading to its terms, best score first.
func (s *Store) FindAny(ctx context.Context, texts []string) (map[string][]Term, error) {
	wanted := make(map[string]bool, len(texts))
	uniq := make([]string, 0, len(texts))
	for _, t := range texts {
		if t == "" || wanted[t] {
			continue
		}
		wanted[t] = true
		uniq = append(uniq, t)
	}

	out := make(map[string][]Term)
	for start := 0; start < len(uniq); start += maxParams {
		chunk := uniq[start:min(start+maxParams, len(uniq))]
		if err := s.findChunk(ctx, chunk, wanted, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) findChunk(ctx context.Context, chunk []string, wanted map[string]bool, out map[string][]Term) error {
	marks := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
	args := make([]any, 0, 2*len(chunk))
	for _, c := range chunk {
		args = append(args, c)
	}
	args = append(args, args...)

	rows, err := s.db.QueryContext(ctx, `SELECT id, dictionary, expression, reading, tags, glossary, score
		FROM terms WHERE expression IN (`+marks+`) OR reading IN (`+marks+`)
		ORDER BY score DESC, id`, args...)
	if err != nil {
		return fmt.Errorf("find terms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return err
		}
		if wanted[t.Expression] {
			out[t.Expression] = append(out[t.Expression], t)
		}
		if t.Reading != t.Expression && wanted[t.Reading] {
			out[t.Reading] = append(out[t.Reading], t)
		}
	}
	return rows.Err()
}

func scanTerm(rows *sql.Rows) (Term, error) {
	var (
		t           Term
		tags, gloss string
	)
	if err := rows.Scan(&t.ID, &t.Dictionary, &t.Expression, &t.Reading, &tags, &gloss, &t.Score); err != nil {
		return Term{}, fmt.Errorf("scan term: %w", err)
	}
	t.Tags = strings.Fields(tags)
	if err := json.Unmarshal([]byte(gloss), &t.Glossary); err != nil {
		return Term{}, fmt.Errorf("term %d glossary: %w", t.ID, err)
	}
	return t, nil
}

// Count returns the number of stored terms.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM terms`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count terms: %w", err)
	}
	return n, nil
}

// Dictionaries lists imported dictionaries by name.
func (s *Store) Dictionaries(ctx context.Context) ([]DictInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT dictionary, COUNT(*) FROM terms GROUP BY dictionary ORDER BY dictionary`)
	if err != nil {
		return nil, fmt.Errorf("list dictionaries: %w", err)
	}
	defer rows.Close()

	var out []DictInfo
	for rows.Next() {
		var d DictInfo
		if err := rows.Scan(&d.Name, &d.Entries); err != nil {
			return nil, fmt.Errorf("scan dictionary: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDictionary removes every term of a dictionary and returns how many
// were removed.
func (s *Store) DeleteDictionary(ctx context.Context, name string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM terms WHERE dictionary = ?`, name)
	if err != nil {
		return 0, fmt.Errorf("delete dictionary %s: %w", name, err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
