package usecase

import (
	"io"
	"log/slog"

	"github.com/evlt/nutstools/internal/domain"
)

// ResolveCodes answers postal code lookups against a loaded reference table.
type ResolveCodes struct {
	table *domain.ReferenceTable
	log   *slog.Logger
}

type ResolveOption func(*ResolveCodes)

func WithResolveLogger(l *slog.Logger) ResolveOption {
	return func(uc *ResolveCodes) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewResolveCodes(table *domain.ReferenceTable, opts ...ResolveOption) *ResolveCodes {
	uc := &ResolveCodes{
		table: table,
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ResolveOne looks up a single postal code. Only an empty code is an error;
// a code missing from the table yields Found=false and a logged warning.
func (uc *ResolveCodes) ResolveOne(postalCode string, level domain.Level) (domain.Lookup, error) {
	if err := level.Validate(); err != nil {
		return domain.Lookup{}, err
	}

	key := domain.NormalizePostalCode(postalCode)
	if err := domain.ValidatePostalCode(key); err != nil {
		return domain.Lookup{PostalCode: key}, err
	}

	res := uc.lookup(key, level)
	if !res.Found {
		uc.log.Warn("lookup.miss", "postal_code", key, "table", uc.table.Source())
	}
	return res, nil
}

// ResolveMany looks up every code, keeping input order and duplicates.
// Misses, empty entries included, yield Found=false at their position; only
// an invalid level fails the call.
func (uc *ResolveCodes) ResolveMany(postalCodes []string, level domain.Level) ([]domain.Lookup, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	out := make([]domain.Lookup, len(postalCodes))
	misses := 0
	for i, raw := range postalCodes {
		key := domain.NormalizePostalCode(raw)
		out[i] = uc.lookup(key, level)
		if !out[i].Found {
			misses++
		}
	}

	if misses > 0 {
		uc.log.Info("lookup.batch", "total", len(postalCodes), "misses", misses)
	}
	return out, nil
}

func (uc *ResolveCodes) lookup(key string, level domain.Level) domain.Lookup {
	region, ok := uc.table.Lookup(key)
	if !ok {
		return domain.Lookup{PostalCode: key}
	}
	return domain.Lookup{PostalCode: key, Region: region.Truncate(level), Found: true}
}
