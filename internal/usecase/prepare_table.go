package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/ports"
)

// PrepareRequest describes how to obtain a reference table.
type PrepareRequest struct {
	FetchRequest

	// TableFile replaces the cached download when it points at an existing file.
	TableFile string
}

type PreparedTable struct {
	Settings domain.Settings
	Target   domain.DownloadTarget
	Path     string
	Table    *domain.ReferenceTable
}

type PrepareTable struct {
	fetch  *FetchTable
	loader ports.TableLoader
}

func NewPrepareTable(fetch *FetchTable, tl ports.TableLoader) *PrepareTable {
	return &PrepareTable{fetch: fetch, loader: tl}
}

// Execute resolves, downloads if needed, and loads the reference table.
func (uc *PrepareTable) Execute(ctx context.Context, req PrepareRequest) (PreparedTable, error) {
	override := strings.TrimSpace(req.TableFile)
	if override != "" && fileExists(override) {
		persisted, err := uc.fetch.settings.Ensure(req.Directory, req.UpdateSettings)
		if err != nil {
			return PreparedTable{}, err
		}
		s := req.Overrides.Apply(persisted)
		uc.fetch.log.Info("table.override", "path", override)
		return uc.load(PreparedTable{Settings: s, Path: override})
	}
	if override != "" {
		uc.fetch.log.Warn("table.override_missing", "path", override)
	}

	res, err := uc.fetch.Execute(ctx, req.FetchRequest)
	if err != nil {
		return PreparedTable{}, err
	}
	if !res.Available && !fileExists(res.Target.CachePath) {
		return PreparedTable{}, &domain.OpError{
			Op:   "usecase.prepare_table",
			Kind: domain.KindNotFound,
			Path: res.Target.CachePath,
			Err:  fmt.Errorf("reference table could not be downloaded from %s: %w", res.Target.URL, domain.ErrNotFound),
		}
	}

	return uc.load(PreparedTable{Settings: res.Settings, Target: res.Target, Path: res.Target.CachePath})
}

func (uc *PrepareTable) load(p PreparedTable) (PreparedTable, error) {
	tbl, err := uc.loader.Load(p.Path)
	if err != nil {
		return PreparedTable{}, err
	}
	uc.fetch.log.Info("table.loaded", "path", p.Path, "rows", tbl.Len())
	p.Table = tbl
	return p, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
