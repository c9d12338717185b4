package domain

import "fmt"

// DuplicatePolicy decides what happens when two rows normalize to the same
// postal code.
type DuplicatePolicy string

const (
	DuplicateLastWins  DuplicatePolicy = "last-wins"
	DuplicateFirstWins DuplicatePolicy = "first-wins"
	DuplicateReject    DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy accepts the policy names used on the command line.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(s); p {
	case DuplicateLastWins, DuplicateFirstWins, DuplicateReject:
		return p, nil
	case "":
		return DuplicateLastWins, nil
	default:
		return "", fmt.Errorf("unsupported duplicate policy %q (expected last-wins|first-wins|reject)", s)
	}
}

// ReferenceTable maps normalized postal codes to region codes.
// It is immutable once built; use TableBuilder to construct one.
type ReferenceTable struct {
	source  string
	entries map[string]RegionCode
}

// Lookup expects an already normalized postal code.
func (t *ReferenceTable) Lookup(postalCode string) (RegionCode, bool) {
	if t == nil {
		return "", false
	}
	c, ok := t.entries[postalCode]
	return c, ok
}

func (t *ReferenceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Source is the file the table was loaded from.
func (t *ReferenceTable) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// Equal reports whether both tables hold the same mapping.
func (t *ReferenceTable) Equal(other *ReferenceTable) bool {
	if t == nil || other == nil {
		return t.Len() == other.Len()
	}
	if t.Len() != other.Len() {
		return false
	}
	for k, v := range t.entries {
		if ov, ok := other.entries[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// TableBuilder accumulates rows for a ReferenceTable.
type TableBuilder struct {
	policy     DuplicatePolicy
	entries    map[string]RegionCode
	duplicates int
}

func NewTableBuilder(policy DuplicatePolicy) *TableBuilder {
	if policy == "" {
		policy = DuplicateLastWins
	}
	return &TableBuilder{
		policy:  policy,
		entries: map[string]RegionCode{},
	}
}

// Add inserts a row. The postal code is normalized here so callers can
// pass cleaned cells as they come.
func (b *TableBuilder) Add(postalCode string, region RegionCode) error {
	key := NormalizePostalCode(postalCode)
	prev, exists := b.entries[key]
	if !exists {
		b.entries[key] = region
		return nil
	}

	b.duplicates++
	switch b.policy {
	case DuplicateFirstWins:
		return nil
	case DuplicateReject:
		if prev == region {
			return nil
		}
		return fmt.Errorf("postal code %s maps to both %s and %s: %w", key, prev, region, ErrDataFormat)
	default:
		b.entries[key] = region
		return nil
	}
}

// Duplicates counts rows that hit an existing key.
func (b *TableBuilder) Duplicates() int { return b.duplicates }

// Build hands the accumulated entries to a new table. The builder must not
// be used afterwards.
func (b *TableBuilder) Build(source string) *ReferenceTable {
	t := &ReferenceTable{source: source, entries: b.entries}
	b.entries = nil
	return t
}
