package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/ports"
)

// FetchRequest selects the settings directory and the table to download.
type FetchRequest struct {
	Directory      string
	Overrides      domain.Overrides
	UpdateSettings bool
	Force          bool
}

// FetchResult reports the active settings, the resolved target and whether
// the table is present in the cache afterwards.
type FetchResult struct {
	Settings  domain.Settings
	Target    domain.DownloadTarget
	Available bool
}

type FetchTable struct {
	settings ports.SettingsStore
	fetcher  ports.TableFetcher
	log      *slog.Logger
}

func NewFetchTable(ss ports.SettingsStore, tf ports.TableFetcher, log *slog.Logger) *FetchTable {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &FetchTable{settings: ss, fetcher: tf, log: log}
}

// Execute ensures the settings file, resolves the download target for the
// effective year/country and downloads the table when it is not cached.
// A failed download is reported through Available, not as an error.
func (uc *FetchTable) Execute(ctx context.Context, req FetchRequest) (FetchResult, error) {
	persisted, err := uc.settings.Ensure(req.Directory, req.UpdateSettings)
	if err != nil {
		return FetchResult{}, err
	}
	s := req.Overrides.Apply(persisted)

	target, err := domain.ResolveDownloadTarget(s, s.DefaultYear, s.DefaultCountry)
	if err != nil {
		return FetchResult{Settings: s}, err
	}

	uc.log.Debug("fetch.target", "year", target.Year, "country", target.Country, "url", target.URL)
	ok := uc.fetcher.FetchIfMissing(ctx, target.URL, target.CachePath, req.Force)

	return FetchResult{Settings: s, Target: target, Available: ok}, nil
}
