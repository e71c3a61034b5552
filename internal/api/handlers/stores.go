package handlers

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/cart"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
)

// CartStores opens the cart store of the request session. An authenticated
// session that has not been merged yet gets its guest cart folded in first.
type CartStores struct {
	backends   cart.Backends
	reconciler *cart.Reconciler
}

func NewCartStores(backends cart.Backends, reconciler *cart.Reconciler) *CartStores {
	return &CartStores{backends: backends, reconciler: reconciler}
}

func (c *CartStores) Open(ctx context.Context) (*cart.Store, error) {

	logger := middleware.LoggerFromContext(ctx)

	session, ok := middleware.SessionFromContext(ctx)
	if !ok {
		logger.Error("Cart requested without a session")
		return nil, errors.InternalError("Session not resolved")
	}

	store, err := cart.Load(ctx, session, c.backends)
	if err != nil {
		return nil, err
	}

	if c.reconciler != nil && session.Authenticated() && !session.Merged {
		// a failed merge keeps the guest cart and is retried on the next request
		if _, err := c.reconciler.Reconcile(ctx, store); err != nil {
			logger.Warn("Guest cart merge failed", slog.String("error", err.Error()))
		}
	}

	return store, nil
}

// unlessSyncWarning drops a sync warning, which the store already reports
// in its view. Any other error is returned as is.
func unlessSyncWarning(err error) error {

	if errors.IsSyncWarning(err) {
		return nil
	}

	return err
}
