// Package countries resolves ISO 3166-1 country codes to country names.
package countries

import (
	_ "embed"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

//go:embed iso3166.json
var iso3166 []byte

// Country is one ISO 3166-1 entry.
type Country struct {
	Alpha2 string `json:"alpha2"`
	Alpha3 string `json:"alpha3"`
	Name   string `json:"name"`
}

// Table is an immutable code → country index, safe for concurrent use.
type Table struct {
	byAlpha2 map[string]Country
	byAlpha3 map[string]Country
}

// Load parses the embedded ISO 3166-1 table.
func Load() (*Table, error) {
	var rows []Country
	if err := json.Unmarshal(iso3166, &rows); err != nil {
		return nil, fmt.Errorf("decoding embedded country table: %w", err)
	}
	return New(rows), nil
}

// MustLoad is Load for package initialisation; the embedded table is
// covered by tests so a failure here is a build defect.
func MustLoad() *Table {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

// New indexes rows by both code lengths.
func New(rows []Country) *Table {
	t := &Table{
		byAlpha2: make(map[string]Country, len(rows)),
		byAlpha3: make(map[string]Country, len(rows)),
	}
	for _, c := range rows {
		t.byAlpha2[strings.ToUpper(c.Alpha2)] = c
		t.byAlpha3[strings.ToUpper(c.Alpha3)] = c
	}
	return t
}

// NameByAlpha2 returns the name for a two-letter code.
func (t *Table) NameByAlpha2(code string) (string, bool) {
	c, ok := t.byAlpha2[normalize(code)]
	return c.Name, ok
}

// NameByAlpha3 returns the name for a three-letter code.
func (t *Table) NameByAlpha3(code string) (string, bool) {
	c, ok := t.byAlpha3[normalize(code)]
	return c.Name, ok
}

// Len returns the number of countries in the table.
func (t *Table) Len() int {
	return len(t.byAlpha2)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
