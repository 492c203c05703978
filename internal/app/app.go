package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardbinder/internal/account"
	"github.com/youruser/cardbinder/internal/api"
	"github.com/youruser/cardbinder/internal/cards"
	"github.com/youruser/cardbinder/internal/config"
	"github.com/youruser/cardbinder/internal/deck"
	"github.com/youruser/cardbinder/internal/dialog"
	"github.com/youruser/cardbinder/internal/latency"
	"github.com/youruser/cardbinder/internal/preset"
	"github.com/youruser/cardbinder/internal/storage"
)

// App owns the store and every repository built on it.
type App struct {
	Store   *storage.Store
	Cards   *cards.Repository
	Decks   *deck.Repository
	Presets *preset.Repository
	Adopter *preset.Adopter
	Account *account.Store
	Dialog  *dialog.Store

	cfg *config.Config
	log *slog.Logger
}

// New opens the configured backend and wires the repositories.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return NewWithBackend(ctx, cfg, backend, logger)
}

// NewWithBackend wires the repositories over an already opened backend.
func NewWithBackend(ctx context.Context, cfg *config.Config, backend storage.Backend, logger *slog.Logger) (*App, error) {
	store := storage.New(backend, cfg.Storage.Namespace, logger)
	lat := latency.New(cfg.Latency)

	decks := deck.NewRepository(store, deck.Options{
		Latency:   lat,
		CopyLimit: cfg.Rules.CopyLimit,
		Logger:    logger,
	})
	userCards := cards.NewRepository(store, decks, cards.Options{
		Latency: lat,
		Logger:  logger,
	})
	presets := preset.NewRepository(store, preset.Options{
		Latency:       lat,
		ReseedPresets: cfg.Catalog.RefreshPresets,
		SystemCards:   systemCatalog(cfg.Catalog, logger),
		Logger:        logger,
	})
	adopter := preset.NewAdopter(decks, userCards, presets, preset.AdoptOptions{
		Latency:  lat,
		MaxDecks: cfg.Rules.MaxDecks,
		Logger:   logger,
	})

	acct := account.NewStore(store, logger)
	if _, err := acct.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load account: %w", err)
	}

	return &App{
		Store:   store,
		Cards:   userCards,
		Decks:   decks,
		Presets: presets,
		Adopter: adopter,
		Account: acct,
		Dialog:  dialog.New(),
		cfg:     cfg,
		log:     logger,
	}, nil
}

// systemCatalog returns the CSV-backed system card pool when a data dir is
// configured and readable, and the built-in pool otherwise.
func systemCatalog(cfg config.CatalogConfig, logger *slog.Logger) func() []cards.Card {
	if cfg.DataDir == "" {
		return cards.SystemCatalog
	}
	loaded, err := cards.LoadCardsFromDataDir(cfg.DataDir)
	if err != nil {
		logger.Warn("system catalog fallback to built-in cards",
			slog.String("data_dir", cfg.DataDir),
			slog.String("error", err.Error()),
		)
		return cards.SystemCatalog
	}
	logger.Info("system catalog loaded", slog.Int("cards", len(loaded)))
	return func() []cards.Card {
		out := make([]cards.Card, len(loaded))
		for i, c := range loaded {
			out[i] = c.Clone()
		}
		return out
	}
}

// Handler builds the HTTP handler over the app's services.
func (a *App) Handler() http.Handler {
	gin.SetMode(a.cfg.Server.Mode)
	h := api.NewHandler(api.Deps{
		Cards:   a.Cards,
		Decks:   a.Decks,
		Presets: a.Presets,
		Adopter: a.Adopter,
		Account: a.Account,
		Dialog:  a.Dialog,
	}, a.log)
	return api.NewEngine(h, a.log)
}

// Close waits for background refreshes and releases the backend.
func (a *App) Close() error {
	a.Cards.WaitBackground()
	a.Decks.WaitBackground()
	a.Presets.WaitBackground()
	return a.Store.Close()
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	a.log.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Run is the server entry point: load configuration, build the app and serve
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting cardbinder",
		slog.String("storage", cfg.Storage.Driver),
		slog.String("namespace", cfg.Storage.Namespace),
		slog.String("log_level", cfg.Log.Level),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("close app", slog.String("error", err.Error()))
		}
	}()

	return a.Serve(ctx)
}
