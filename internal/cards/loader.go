package cards

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Catalog files read by LoadCardsFromDataDir, in load order.
const (
	SystemCardsFile = "system_cards.csv"
	CustomCardsFile = "custom_cards.csv"
)

// LoadCardsFromDataDir reads the system card pool from SystemCardsFile and
// CustomCardsFile in dir. Either file may be absent, but not both.
func LoadCardsFromDataDir(dir string) ([]Card, error) {
	var pool []Card
	read := 0
	for _, name := range []string{SystemCardsFile, CustomCardsFile} {
		cs, err := readCardFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		read++
		pool = append(pool, cs...)
	}
	if read == 0 {
		return nil, fmt.Errorf("cards: no catalog csv in %s", dir)
	}
	return pool, nil
}

func readCardFile(path string) ([]Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cs, err := decodeCards(csv.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("cards: %s: %w", path, err)
	}
	return cs, nil
}

// decodeCards reads a header row naming the columns (id is required; name,
// keywords, description and category are optional) followed by one card per row.
func decodeCards(r *csv.Reader) ([]Card, error) {
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header")
	}
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["id"]; !ok {
		return nil, errors.New("missing id column")
	}

	out := []Card{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		line, _ := r.FieldPos(0)
		id, err := strconv.Atoi(field("id"))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad id: %w", line, err)
		}
		cat := Category(strings.ToLower(field("category")))
		if !cat.Valid() {
			cat = CategoryOther
		}
		out = append(out, Card{
			ID:          id,
			Name:        field("name"),
			Keywords:    splitKeywords(field("keywords")),
			Description: field("description"),
			Category:    cat,
		})
	}
}

// splitKeywords splits a keywords cell on '/', '／' or '|'. A lone "-" marks
// an empty cell.
func splitKeywords(cell string) []string {
	kw := []string{}
	for _, k := range strings.FieldsFunc(cell, func(r rune) bool {
		return r == '/' || r == '／' || r == '|'
	}) {
		if k = strings.TrimSpace(k); k != "" && k != "-" {
			kw = append(kw, k)
		}
	}
	return kw
}
