// Package app wires the repository, feed clients, question sources,
// game engine, and admin surface together.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/config"
	"github.com/bluetrivia/bluetrivia/internal/game"
	"github.com/bluetrivia/bluetrivia/internal/handlers"
	"github.com/bluetrivia/bluetrivia/internal/logger"
	"github.com/bluetrivia/bluetrivia/internal/repository"
	"github.com/bluetrivia/bluetrivia/internal/sources"
	"github.com/bluetrivia/bluetrivia/internal/websocket"
	"github.com/bluetrivia/bluetrivia/pkg/bsky"
	"github.com/bluetrivia/bluetrivia/pkg/tmdb"
)

// App holds all application dependencies
type App struct {
	cfg    config.Config
	log    logger.Logger
	repo   *repository.Repository
	feed   bsky.Client
	engine *game.Engine
	hub    *websocket.Hub
	admin  *http.Server
}

// New creates and initializes an application instance. The feed and
// movie clients are injected so tests can substitute mocks; a nil
// movie client disables the movie source.
func New(cfg config.Config, log logger.Logger, feed bsky.Client, movies tmdb.Client) (*App, error) {
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	srcs, err := buildSources(repo, movies, log)
	if err != nil {
		repo.Close()
		return nil, err
	}

	hub := websocket.New(log, repo)
	hub.Start()

	opts := []game.Option{
		game.WithBroadcaster(hub),
	}
	if cfg.TMDB.ImageQuality > 0 {
		opts = append(opts, game.WithImageQuality(cfg.TMDB.ImageQuality))
	}
	if cfg.Game.ManualAdvance {
		log.Info("Manual advance enabled, press ENTER to skip waits")
		opts = append(opts, game.WithWaiter(game.NewManualWaiter(os.Stdin, log)))
	}

	engine, err := game.New(repo, feed, srcs, cfg.Game, log, opts...)
	if err != nil {
		repo.Close()
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		log:    log,
		repo:   repo,
		feed:   feed,
		engine: engine,
		hub:    hub,
	}

	if cfg.Admin.Addr != "" {
		h := handlers.New(repo, hub, log)
		app.admin = &http.Server{
			Addr:    cfg.Admin.Addr,
			Handler: h.Router(),
		}
	}

	return app, nil
}

// buildSources assembles the question sources. The trivia bank is
// always available and gets seed questions when empty; the movie
// source needs a TMDB client.
func buildSources(repo *repository.Repository, movies tmdb.Client, log logger.Logger) ([]sources.Source, error) {
	trivia := sources.NewTriviaSource(repo, log)
	if err := trivia.SeedDefaults(context.Background()); err != nil {
		return nil, err
	}

	srcs := []sources.Source{trivia}
	if movies != nil {
		srcs = append(srcs, sources.NewMovieSource(movies, log))
	}
	return srcs, nil
}

// Run logs in to the feed, sweeps leftovers from a previous crash,
// starts the admin server when configured, and drives the round loop
// until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	err := a.run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) run(ctx context.Context) error {
	if err := a.feed.Login(ctx); err != nil {
		return err
	}

	if err := a.engine.RecoverStartup(ctx); err != nil {
		return err
	}

	if a.admin != nil {
		go func() {
			a.log.Info("Admin API listening", "addr", a.admin.Addr)
			if err := a.admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error("Admin server failed", "error", err)
			}
		}()
	}

	return a.engine.Run(ctx)
}

// Close shuts down the admin server and releases the database
func (a *App) Close() {
	if a.admin != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.admin.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("Admin server shutdown failed", "error", err)
		}
	}
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.log.Warn("Failed to close database", "error", err)
		}
	}
}
