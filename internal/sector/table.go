// Package sector holds the EBITDA multiple table keyed by industry
// sector. The table is a read-only lookup once loaded; unknown sectors
// fall back to a default band rather than failing.
package sector

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Fallback band applied when a sector is missing from the table. Kept
// non-zero so an unknown sector still yields a usable valuation.
const (
	FallbackLow  = 3.0
	FallbackHigh = 5.0
)

// Multiple is one sector's empirical EBITDA multiplier band.
type Multiple struct {
	Sector string  `json:"sector" yaml:"sector"`
	Low    float64 `json:"multiple_low" yaml:"multiple_low"`
	High   float64 `json:"multiple_high" yaml:"multiple_high"`
}

// Table is an indexed, immutable collection of sector multiples.
type Table struct {
	bySector map[string]Multiple
}

// NewTable builds a table from fixed-shape entries, rejecting malformed
// bands at the boundary so undefined values never reach the arithmetic.
func NewTable(multiples []Multiple) (*Table, error) {
	t := &Table{bySector: make(map[string]Multiple, len(multiples))}
	for _, m := range multiples {
		if m.Sector == "" {
			return nil, eris.New("sector: entry with empty sector name")
		}
		if m.Low <= 0 || m.High <= 0 {
			return nil, eris.Errorf("sector: %s has non-positive multiple band", m.Sector)
		}
		if m.Low > m.High {
			return nil, eris.Errorf("sector: %s has inverted multiple band (%.2f > %.2f)", m.Sector, m.Low, m.High)
		}
		if _, dup := t.bySector[m.Sector]; dup {
			return nil, eris.Errorf("sector: duplicate entry %s", m.Sector)
		}
		t.bySector[m.Sector] = m
	}
	return t, nil
}

// LoadFile reads a multiple table from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "sector: read %s", path)
	}

	var doc struct {
		Multiples []Multiple `yaml:"multiples"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "sector: parse %s", path)
	}
	if len(doc.Multiples) == 0 {
		return nil, eris.Errorf("sector: %s defines no multiples", path)
	}

	return NewTable(doc.Multiples)
}

// Lookup returns the band for a sector, matched case-sensitively. When
// absent it returns the fallback band and false.
func (t *Table) Lookup(sectorName string) (Multiple, bool) {
	if m, ok := t.bySector[sectorName]; ok {
		return m, true
	}
	return Multiple{Sector: sectorName, Low: FallbackLow, High: FallbackHigh}, false
}

// Sectors returns the known sector names in sorted order.
func (t *Table) Sectors() []string {
	names := make([]string, 0, len(t.bySector))
	for name := range t.bySector {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every entry, sorted by sector name.
func (t *Table) All() []Multiple {
	out := make([]Multiple, 0, len(t.bySector))
	for _, name := range t.Sectors() {
		out = append(out, t.bySector[name])
	}
	return out
}

// DefaultTable returns the built-in multiple table used when no external
// file is configured.
func DefaultTable() *Table {
	t, err := NewTable([]Multiple{
		{Sector: "Tecnología", Low: 6.0, High: 10.0},
		{Sector: "Salud", Low: 5.5, High: 9.0},
		{Sector: "Industrial", Low: 4.0, High: 6.5},
		{Sector: "Alimentación", Low: 4.5, High: 7.0},
		{Sector: "Distribución", Low: 3.5, High: 5.5},
		{Sector: "Construcción", Low: 3.0, High: 5.0},
		{Sector: "Servicios profesionales", Low: 4.0, High: 6.0},
		{Sector: "Hostelería", Low: 3.0, High: 4.5},
		{Sector: "Transporte", Low: 3.5, High: 5.0},
		{Sector: "Energía", Low: 5.0, High: 8.0},
	})
	if err != nil {
		panic(err) // static data, cannot fail
	}
	return t
}
