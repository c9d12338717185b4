package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/infra/catalog"
	"github.com/evlt/nutstools/internal/infra/fetcher"
	"github.com/evlt/nutstools/internal/infra/httpclient"
	"github.com/evlt/nutstools/internal/infra/logger"
	"github.com/evlt/nutstools/internal/infra/reftable"
	"github.com/evlt/nutstools/internal/infra/settingsstore"
	"github.com/evlt/nutstools/internal/usecase"
)

// tableFlags select which reference table a command works with.
type tableFlags struct {
	year           string
	country        string
	updateSettings bool
	forceDownload  bool
	tableFile      string
	duplicates     string
}

func (f tableFlags) overrides() domain.Overrides {
	return domain.Overrides{Year: f.year, Country: f.country}
}

type session struct {
	dir   string
	log   *slog.Logger
	store *settingsstore.Store
	fetch *usecase.FetchTable
}

func newSession(g *globalFlags, tf tableFlags) *session {
	log := logger.L()

	store := settingsstore.NewStore(catalog.Builtin(), settingsstore.WithOverrides(tf.overrides()))

	cfg := httpclient.DefaultConfig()
	cfg.ProxyAuth = httpclient.SelectProxyAuth(os.Getenv, log)
	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(cfg)),
		httpclient.WithTimeout(cfg.Timeout),
	)
	log.Debug("http.client", "proxy_auth", cfg.ProxyAuth.Name(), "timeout", cfg.Timeout.String())

	return &session{
		dir:   g.directory,
		log:   log,
		store: store,
		fetch: usecase.NewFetchTable(store, fetcher.New(exec, fetcher.WithLogger(log)), log),
	}
}

func (s *session) fetchRequest(tf tableFlags) usecase.FetchRequest {
	return usecase.FetchRequest{
		Directory:      s.dir,
		Overrides:      tf.overrides(),
		UpdateSettings: tf.updateSettings,
		Force:          tf.forceDownload,
	}
}

func (s *session) prepareTable(ctx context.Context, tf tableFlags) (usecase.PreparedTable, error) {
	policy, err := domain.ParseDuplicatePolicy(strings.TrimSpace(tf.duplicates))
	if err != nil {
		return usecase.PreparedTable{}, err
	}

	loader := reftable.NewLoader(reftable.WithDuplicatePolicy(policy))
	uc := usecase.NewPrepareTable(s.fetch, loader)
	return uc.Execute(ctx, usecase.PrepareRequest{
		FetchRequest: s.fetchRequest(tf),
		TableFile:    tf.tableFile,
	})
}
