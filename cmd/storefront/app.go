package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/erauner12/storefront/internal/account"
	"github.com/erauner12/storefront/internal/api"
	"github.com/erauner12/storefront/internal/cart"
	"github.com/erauner12/storefront/internal/config"
	"github.com/erauner12/storefront/internal/pricing"
	"github.com/erauner12/storefront/internal/session"
	"github.com/rs/zerolog/log"
)

// errNotSignedIn is returned by commands that need a session
var errNotSignedIn = errors.New("not signed in; run 'storefront login' first")

// app holds the state objects one command invocation works with
type app struct {
	cfg      *config.Config
	closer   func() error
	session  *session.Store
	client   *api.Client
	cart     *cart.Engine
	accounts *account.Service
	rules    pricing.Rules
}

// init opens the configured session storage and wires the client, cart
// engine and account service on top of it
func (a *app) init(ctx context.Context, cfg *config.Config) error {
	storage, closer, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	sess, err := session.New(ctx, storage)
	if err != nil {
		if closer != nil {
			closer()
		}
		return err
	}

	client := api.NewClient(cfg.APIBaseURL, sess, api.WithTimeout(cfg.HTTPTimeout.Std()))

	a.cfg = cfg
	a.closer = closer
	a.session = sess
	a.client = client
	a.cart = cart.NewEngine(client, sess)
	a.accounts = account.NewService(client, sess)
	a.rules = cfg.Pricing.Rules()
	return nil
}

// Close releases the session storage
func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer()
	a.closer = nil
	return err
}

func openStorage(ctx context.Context, cfg *config.Config) (session.Storage, func() error, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return session.NewMemoryStorage(), nil, nil
	case config.StoreKeyring:
		return session.NewKeyringStorage(session.DefaultKeyringService), nil, nil
	case config.StoreSQLite:
		db, err := session.OpenSQLite(ctx, cfg.StorePath())
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case config.StoreFile:
		path := cfg.StorePath()
		log.Debug().Str("path", path).Msg("using file session store")
		return session.NewFileStorage(path), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStoreBackend, cfg.Store.Backend)
	}
}

// requireSession fails fast for commands that cannot work signed out
func (a *app) requireSession() error {
	if !a.session.Authenticated() {
		return errNotSignedIn
	}
	return nil
}

// cartError turns the engine's error state into a command error
func (a *app) cartError() error {
	if msg := a.cart.LastError(); msg != "" {
		return errors.New(msg)
	}
	return nil
}
