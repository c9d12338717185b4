package usecase

import (
	"context"
	"os"

	"github.com/evlt/nutstools/internal/domain"
)

// --- fakes shared by the use case tests ---

type fakeSettingsStore struct {
	settings  domain.Settings
	err       error
	calls     int
	overwrite bool
}

func (f *fakeSettingsStore) Ensure(directory string, overwrite bool) (domain.Settings, error) {
	f.calls++
	f.overwrite = overwrite
	if f.err != nil {
		return domain.Settings{}, f.err
	}
	s := f.settings
	s.Directory = directory
	return s, nil
}

// fakeFetcher writes content to cachePath when ok is true.
type fakeFetcher struct {
	ok        bool
	content   string
	calls     int
	lastURL   string
	lastPath  string
	lastForce bool
}

func (f *fakeFetcher) FetchIfMissing(_ context.Context, url, cachePath string, force bool) bool {
	f.calls++
	f.lastURL, f.lastPath, f.lastForce = url, cachePath, force
	if f.ok && f.content != "" {
		_ = os.WriteFile(cachePath, []byte(f.content), 0o644)
	}
	return f.ok
}

type stubLoader struct {
	table *domain.ReferenceTable
	err   error
	paths []string
}

func (s *stubLoader) Load(path string) (*domain.ReferenceTable, error) {
	s.paths = append(s.paths, path)
	return s.table, s.err
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		"2021": {
			URL:   "https://example.test/NUTS-2021/",
			Files: map[string]string{"NL": "pc2020_NL_NUTS-2021_v2.0.zip", "BE": "pc2020_BE_NUTS-2021_v1.0.zip"},
		},
	}
}

func testTable(rows map[string]domain.RegionCode) *domain.ReferenceTable {
	b := domain.NewTableBuilder(domain.DuplicateLastWins)
	for k, v := range rows {
		_ = b.Add(k, v)
	}
	return b.Build("test")
}
