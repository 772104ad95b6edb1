// Package app wires the storefront core together: stores, remote clients,
// repositories and the per-screen state holders the UI layer binds to.
package app

import (
	"errors"

	"github.com/fjod/go_storefront/internal/api"
	"github.com/fjod/go_storefront/internal/config"
	"github.com/fjod/go_storefront/internal/repository"
	"github.com/fjod/go_storefront/internal/session"
	"github.com/fjod/go_storefront/internal/store"
	"github.com/fjod/go_storefront/internal/viewmodel"
)

type App struct {
	Home    *viewmodel.HomeViewModel
	Detail  *viewmodel.DetailViewModel
	Cart    *viewmodel.CartViewModel
	Summary *viewmodel.SummaryViewModel
	Login   *viewmodel.LoginViewModel

	carts    *store.SQLiteStore
	sessions *session.Store
}

func New(cfg config.Config) (*App, error) {
	carts, err := store.NewSQLiteStore(cfg.CartDBPath)
	if err != nil {
		return nil, err
	}

	if err := carts.RunMigrations(cfg.MigrationsPath); err != nil {
		carts.Close()
		return nil, err
	}

	sessions, err := session.Open(cfg.PrefsDBPath)
	if err != nil {
		carts.Close()
		return nil, err
	}

	client, err := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, sessions)
	if err != nil {
		carts.Close()
		sessions.Close()
		return nil, err
	}

	cartRepo := repository.NewCartRepository(carts, sessions)
	productRepo := repository.NewProductRepository(client)
	userRepo := repository.NewUserRepository(client, sessions)

	return &App{
		Home:     viewmodel.NewHomeViewModel(productRepo, cartRepo, userRepo, sessions),
		Detail:   viewmodel.NewDetailViewModel(productRepo, cartRepo),
		Cart:     viewmodel.NewCartViewModel(cartRepo),
		Summary:  viewmodel.NewSummaryViewModel(cartRepo, userRepo),
		Login:    viewmodel.NewLoginViewModel(userRepo, sessions),
		carts:    carts,
		sessions: sessions,
	}, nil
}

func (a *App) Close() error {
	return errors.Join(a.carts.Close(), a.sessions.Close())
}
