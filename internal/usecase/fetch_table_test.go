package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/evlt/nutstools/internal/domain"
)

func TestFetchTable_ResolvesTargetAndFetches(t *testing.T) {
	dir := t.TempDir()
	store := &fakeSettingsStore{settings: domain.DefaultSettings("", testCatalog())}
	fetcher := &fakeFetcher{ok: true}

	res, err := NewFetchTable(store, fetcher, nil).Execute(context.Background(), FetchRequest{Directory: dir, Force: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Available {
		t.Fatalf("expected table to be available")
	}
	if fetcher.lastURL != "https://example.test/NUTS-2021/pc2020_NL_NUTS-2021_v2.0.zip" {
		t.Fatalf("unexpected url %s", fetcher.lastURL)
	}
	if fetcher.lastPath != filepath.Join(dir, "Cache", "pc2020_NL_NUTS-2021_v2.0.zip") {
		t.Fatalf("unexpected cache path %s", fetcher.lastPath)
	}
	if !fetcher.lastForce {
		t.Fatalf("expected force to be passed through")
	}
}

func TestFetchTable_OverridesWinForThisRun(t *testing.T) {
	store := &fakeSettingsStore{settings: domain.DefaultSettings("", testCatalog())}
	fetcher := &fakeFetcher{ok: true}

	res, err := NewFetchTable(store, fetcher, nil).Execute(context.Background(), FetchRequest{
		Directory:      t.TempDir(),
		Overrides:      domain.Overrides{Country: "be"},
		UpdateSettings: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Target.Country != "BE" {
		t.Fatalf("expected BE target, got %s", res.Target.Country)
	}
	if !store.overwrite {
		t.Fatalf("expected UpdateSettings to request an overwrite")
	}
}

func TestFetchTable_UnknownCatalogEntries(t *testing.T) {
	store := &fakeSettingsStore{settings: domain.DefaultSettings("", testCatalog())}
	fetcher := &fakeFetcher{ok: true}
	uc := NewFetchTable(store, fetcher, nil)

	_, err := uc.Execute(context.Background(), FetchRequest{Directory: t.TempDir(), Overrides: domain.Overrides{Year: "1999"}})
	if !domain.IsKind(err, domain.KindUnknownYear) {
		t.Fatalf("expected KindUnknownYear, got %v", err)
	}

	_, err = uc.Execute(context.Background(), FetchRequest{Directory: t.TempDir(), Overrides: domain.Overrides{Country: "XX"}})
	if !domain.IsKind(err, domain.KindUnknownCountry) {
		t.Fatalf("expected KindUnknownCountry, got %v", err)
	}

	if fetcher.calls != 0 {
		t.Fatalf("expected no fetch for catalog misses, got %d", fetcher.calls)
	}
}

func TestFetchTable_SettingsErrorPropagates(t *testing.T) {
	boom := &domain.OpError{Op: "settingsstore.read", Kind: domain.KindInvalidConfig, Err: domain.ErrInvalidConfig}
	store := &fakeSettingsStore{err: boom}

	_, err := NewFetchTable(store, &fakeFetcher{}, nil).Execute(context.Background(), FetchRequest{Directory: t.TempDir()})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestFetchTable_FailedDownloadIsNotAnError(t *testing.T) {
	store := &fakeSettingsStore{settings: domain.DefaultSettings("", testCatalog())}

	res, err := NewFetchTable(store, &fakeFetcher{ok: false}, nil).Execute(context.Background(), FetchRequest{Directory: t.TempDir()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Available {
		t.Fatalf("expected Available=false")
	}
}
