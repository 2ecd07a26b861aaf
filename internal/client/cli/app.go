// Package cli implements the interactive Credor client: a REPL over the
// session manager and the profile, scan, and news accessors.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	_ "modernc.org/sqlite"

	"github.com/credor-app/credor/internal/client/api"
	"github.com/credor-app/credor/internal/client/config"
	"github.com/credor-app/credor/internal/client/news"
	"github.com/credor-app/credor/internal/client/scan"
	"github.com/credor-app/credor/internal/client/session"
	"github.com/credor-app/credor/internal/client/settings"
	"github.com/credor-app/credor/internal/client/storage"
	"github.com/credor-app/credor/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	store   storage.Store
	api     *api.Client
	session *session.Manager
	scan    *scan.Accessor
	news    *news.Accessor

	// settings is created lazily: its constructor fetches the profile,
	// which needs a live session.
	settings *settings.Accessor

	reader *bufio.Reader
}

// NewApp wires config, storage, the API client, the session manager, and
// the accessors together. A broken local database degrades to an in-memory
// store rather than failing startup.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	var store storage.Store
	sqlStore, db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Warn(ctx, "local database unavailable, state will not persist", "error", err)
		store = storage.NewMemoryStore()
	} else {
		store = sqlStore
	}

	apiClient := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(log),
	)

	sessionMgr := session.NewManager(store, apiClient, log)

	newsClient := news.NewClient(cfg.NewsEndpoint, cfg.NewsAPIKey, news.WithTopic(cfg.NewsTopic))
	newsAccessor := news.NewAccessor(newsClient, store, log,
		news.WithFreshnessWindow(cfg.NewsFreshnessWindow),
	)

	return &App{
		config:  cfg,
		log:     log,
		db:      db,
		store:   store,
		api:     apiClient,
		session: sessionMgr,
		scan:    scan.NewAccessor(apiClient, sessionMgr, log),
		news:    newsAccessor,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the session, starts the news poller, and hands control to
// the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Load(ctx)
	a.session.RefreshContext(ctx)
	a.news.Start(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close tears down the news poller and the local database.
func (a *App) Close() {
	a.news.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) getStatus() string {
	if s, ok := a.session.Current(); ok {
		return s.Name
	}
	return "signed out"
}

// ensureSettings returns the settings accessor, constructing it (with its
// up-front profile fetch) on first use after login.
func (a *App) ensureSettings(ctx context.Context) *settings.Accessor {
	if a.settings == nil {
		a.settings = settings.NewAccessor(ctx, a.api, a.session, a.log)
	}
	return a.settings
}
