package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Level is the depth of the NUTS hierarchy: 0 (country) to 3 (most granular).
type Level int

const (
	LevelCountry Level = 0
	Level1       Level = 1
	Level2       Level = 2
	Level3       Level = 3
)

// MaxLevel is the most granular NUTS level and the default for lookups.
const MaxLevel = Level3

// Validate reports an invalid_level error for anything outside [0,3].
func (l Level) Validate() error {
	if l < LevelCountry || l > MaxLevel {
		return &OpError{
			Op:   "level.validate",
			Kind: KindInvalidLevel,
			Err:  fmt.Errorf("level %d outside range 0..3: %w", int(l), ErrInvalidLevel),
		}
	}
	return nil
}

// ColumnName is the header used for result columns, e.g. "NUTS2".
func (l Level) ColumnName() string {
	return fmt.Sprintf("NUTS%d", int(l))
}

// RegionCode is a NUTS code: a two letter country prefix followed by up to
// three characters, one per hierarchy level.
type RegionCode string

// Truncate returns the code at a coarser level by dropping 3-level
// trailing characters. The level must already be validated.
func (c RegionCode) Truncate(level Level) RegionCode {
	drop := int(MaxLevel - level)
	if drop <= 0 {
		return c
	}
	if drop >= len(c) {
		return ""
	}
	return c[:len(c)-drop]
}

// Country is the two letter prefix of the code.
func (c RegionCode) Country() string {
	if len(c) < 2 {
		return string(c)
	}
	return string(c[:2])
}

// NormalizePostalCode removes every whitespace rune and upper-cases the rest.
func NormalizePostalCode(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ValidatePostalCode rejects a postal code that is empty after
// normalization. Any other value is a lookup key; one the table does not
// hold is a miss, not an error.
func ValidatePostalCode(normalized string) error {
	if normalized == "" {
		return &OpError{
			Op:   "postal.validate",
			Kind: KindInvalidInput,
			Err:  fmt.Errorf("empty postal code: %w", ErrInvalidInput),
		}
	}
	return nil
}

// Lookup is the outcome of resolving a single postal code.
// A miss is a valid outcome: Found is false and Region is empty.
type Lookup struct {
	PostalCode string     `json:"postal_code"`
	Region     RegionCode `json:"region,omitempty"`
	Found      bool       `json:"found"`
}
