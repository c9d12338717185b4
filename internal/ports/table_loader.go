package ports

import "github.com/evlt/nutstools/internal/domain"

// TableLoader loads a reference table from a source (e.g., a zip on disk).
type TableLoader interface {
	Load(path string) (*domain.ReferenceTable, error)
}
