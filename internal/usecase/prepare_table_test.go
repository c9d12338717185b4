package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/evlt/nutstools/internal/domain"
)

func newPrepare(store *fakeSettingsStore, fetcher *fakeFetcher, loader *stubLoader) *PrepareTable {
	return NewPrepareTable(NewFetchTable(store, fetcher, nil), loader)
}

func TestPrepareTable_DownloadsAndLoads(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Cache"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	store := &fakeSettingsStore{settings: domain.DefaultSettings("", testCatalog())}
	fetcher := &fakeFetcher{ok: true, content: "NUTS3;CODE\n"}
	loader := &stubLoader{table: testTable(map[string]domain.RegionCode{"2675BP": "NL333"})}

	got, err := newPrepare(store, fetcher, loader).Execute(context.Background(), PrepareRequest{
		FetchRequest: FetchRequest{Directory: dir},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Table.Len() != 1 {
		t.Fatalf("expected loaded table")
	}
	want := filepath.Join(dir, "Cache", "pc2020_NL_NUTS-2021_v2.0.zip")
	if got.Path != want || loader.paths[0] != want {
		t.Fatalf("expected load from %s, got %s", want, got.Path)
	}
}

func TestPrepareTable_TableFileOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "selection.csv")
	if err := os.WriteFile(override, []byte("NUTS3;CODE\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := &fakeSettingsStore{settings: domain.DefaultSettings("", testCatalog())}
	fetcher := &fakeFetcher{ok: true}
	loader := &stubLoader{table: testTable(nil)}

	got, err := newPrepare(store, fetcher, loader).Execute(context.Background(), PrepareRequest{
		FetchRequest: FetchRequest{Directory: t.TempDir()},
		TableFile:    override,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Path != override {
		t.Fatalf("expected override path, got %s", got.Path)
	}
	if fetcher.calls != 0 {
		t.Fatalf("expected no download when a table file is given, got %d", fetcher.calls)
	}
}

func TestPrepareTable_MissingOverrideFallsBackToDownload(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Cache"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	store := &fakeSettingsStore{settings: domain.DefaultSettings("", testCatalog())}
	fetcher := &fakeFetcher{ok: true, content: "x"}
	loader := &stubLoader{table: testTable(nil)}

	_, err := newPrepare(store, fetcher, loader).Execute(context.Background(), PrepareRequest{
		FetchRequest: FetchRequest{Directory: dir},
		TableFile:    filepath.Join(dir, "does-not-exist.csv"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected a download, got %d calls", fetcher.calls)
	}
}

func TestPrepareTable_UnavailableTable(t *testing.T) {
	store := &fakeSettingsStore{settings: domain.DefaultSettings("", testCatalog())}
	loader := &stubLoader{}

	_, err := newPrepare(store, &fakeFetcher{ok: false}, loader).Execute(context.Background(), PrepareRequest{
		FetchRequest: FetchRequest{Directory: t.TempDir()},
	})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if len(loader.paths) != 0 {
		t.Fatalf("loader must not run without a table")
	}
}

func TestPrepareTable_LoaderErrorPropagates(t *testing.T) {
	override := filepath.Join(t.TempDir(), "broken.csv")
	if err := os.WriteFile(override, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := &fakeSettingsStore{settings: domain.DefaultSettings("", testCatalog())}
	loader := &stubLoader{err: &domain.OpError{Op: "reftable.parse", Kind: domain.KindDataFormat, Err: domain.ErrDataFormat}}

	_, err := newPrepare(store, &fakeFetcher{}, loader).Execute(context.Background(), PrepareRequest{
		FetchRequest: FetchRequest{Directory: t.TempDir()},
		TableFile:    override,
	})
	if !domain.IsKind(err, domain.KindDataFormat) {
		t.Fatalf("expected KindDataFormat, got %v", err)
	}
}
