package pipeline

import (
	"strconv"
	"strings"

	"github.com/XII-A/Edit-KML-Files/internal/sheet"
)

// Slots of the fixed statistics record accumulated per polygon.
const (
	SlotBuildings = iota // rows contributing to the key
	SlotFloorSum
	SlotAreaSum
	SlotSafe
	SlotPartial
	SlotDamaged
	SlotDestroyed
	SlotApartmentSum
	SlotRepairSum
	statSlots
)

// KeyFunc derives the aggregation key for one spreadsheet row. Rows whose
// key is empty or "nan" are discarded before aggregation.
type KeyFunc func(sheet.Row) string

// ColumnKey keys rows by the trimmed value of a single column.
func ColumnKey(col string) KeyFunc {
	return func(r sheet.Row) string {
		return strings.TrimSpace(r[col])
	}
}

// SectorKey derives the deployed key shape: the first ASCII letter found in
// the name column, uppercased, joined by a hyphen to the secondary
// identifier column. Case folding keeps case-variant survey rows for one
// sector in one bucket. Rows whose name contains no ASCII letter yield an
// empty key and are dropped.
func SectorKey(nameCol, numberCol string) KeyFunc {
	return func(r sheet.Row) string {
		letter := firstASCIILetter(r[nameCol])
		if letter == "" {
			return ""
		}
		return letter + "-" + strings.TrimSpace(r[numberCol])
	}
}

func firstASCIILetter(s string) string {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return string(r)
		}
		if r >= 'a' && r <= 'z' {
			return string(r - ('a' - 'A'))
		}
	}
	return ""
}

// StatMapping declares which spreadsheet columns feed the statistics record.
// Columns named here are optional in the sheet: absent or unparseable cells
// contribute zero. A nil mapping disables statistics entirely for simple
// spreadsheet shapes.
type StatMapping struct {
	Floors     string         `yaml:"floors,omitempty"`
	Area       string         `yaml:"area,omitempty"`
	Apartments string         `yaml:"apartments,omitempty"`
	RepairCost string         `yaml:"repair_cost,omitempty"`
	Damage     string         `yaml:"damage,omitempty"`
	Keywords   DamageKeywords `yaml:"keywords,omitempty"`
}

// DamageKeywords classifies the categorical damage cell by substring
// containment, checked in the order safe, partial, damaged, destroyed.
// Category values are expected to be mutually exclusive; when a cell matches
// more than one keyword the first wins and the row is counted as ambiguous.
type DamageKeywords struct {
	Safe      string `yaml:"safe,omitempty"`
	Partial   string `yaml:"partial,omitempty"`
	Damaged   string `yaml:"damaged,omitempty"`
	Destroyed string `yaml:"destroyed,omitempty"`
}

func (k DamageKeywords) classify(value string) (slot, matches int) {
	slot = -1
	categories := []struct {
		keyword string
		slot    int
	}{
		{k.Safe, SlotSafe},
		{k.Partial, SlotPartial},
		{k.Damaged, SlotDamaged},
		{k.Destroyed, SlotDestroyed},
	}
	for _, c := range categories {
		if c.keyword == "" || !strings.Contains(value, c.keyword) {
			continue
		}
		matches++
		if slot < 0 {
			slot = c.slot
		}
	}
	return slot, matches
}

// Entry accumulates everything one polygon key collected from the sheet.
type Entry struct {
	Images    []string // column order then row order, duplicates preserved
	Stats     [statSlots]int
	HasStats  bool
	Notes     []string // free-text description cells
	Ambiguous int      // damage cells matching more than one category
}

// Aggregated is the result of one load: entries keyed by polygon key, with
// keys preserved in insertion order. A key with zero contributing rows
// never appears.
type Aggregated struct {
	Keys    []string
	Entries map[string]*Entry
}

// AggregateOptions configures one aggregation pass.
type AggregateOptions struct {
	Key          KeyFunc
	Required     []string // columns the key derivation needs
	ImageColumns []string
	DescColumns  []string
	Stats        *StatMapping
}

// Aggregate groups spreadsheet rows by polygon key and accumulates image
// lists, free-text notes, and the statistics record. Required, image, and
// description columns are validated against the header before any row is
// touched; a gap fails the whole load with MissingColumnError.
func Aggregate(tbl *sheet.Table, opts AggregateOptions) (*Aggregated, error) {
	var missing []string
	for _, group := range [][]string{opts.Required, opts.ImageColumns, opts.DescColumns} {
		for _, col := range group {
			if !tbl.HasColumn(col) {
				missing = append(missing, col)
			}
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Missing: missing, Available: tbl.Columns}
	}

	agg := &Aggregated{Entries: make(map[string]*Entry)}

	for _, row := range tbl.Rows {
		key := strings.TrimSpace(opts.Key(row))
		if key == "" || strings.EqualFold(key, "nan") {
			continue
		}

		e := agg.Entries[key]
		if e == nil {
			e = &Entry{}
			agg.Entries[key] = e
			agg.Keys = append(agg.Keys, key)
		}

		for _, col := range opts.ImageColumns {
			if v := strings.TrimSpace(row[col]); !blankCell(v) {
				e.Images = append(e.Images, v)
			}
		}

		if m := opts.Stats; m != nil {
			e.HasStats = true
			e.Stats[SlotBuildings]++
			e.Stats[SlotFloorSum] += cellInt(row, m.Floors)
			e.Stats[SlotAreaSum] += cellInt(row, m.Area)
			e.Stats[SlotApartmentSum] += cellInt(row, m.Apartments)
			e.Stats[SlotRepairSum] += cellInt(row, m.RepairCost)
			if m.Damage != "" {
				slot, matches := m.Keywords.classify(row[m.Damage])
				if matches > 1 {
					e.Ambiguous++
				}
				if slot >= 0 {
					e.Stats[slot]++
				}
			}
		}

		for _, col := range opts.DescColumns {
			if v := strings.TrimSpace(row[col]); !blankCell(v) {
				e.Notes = append(e.Notes, v)
			}
		}
	}

	return agg, nil
}

// blankCell treats empty and the literal "nan" (any case) as absent; the
// latter is how missing cells round-trip through survey exports.
func blankCell(v string) bool {
	return v == "" || strings.EqualFold(v, "nan")
}

// cellInt parses an integer cell; float cells truncate; anything else
// contributes zero.
func cellInt(r sheet.Row, col string) int {
	if col == "" {
		return 0
	}
	v := strings.TrimSpace(r[col])
	if blankCell(v) {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return 0
}
