// Package store owns the persisted cart table: a single sqlite table of cart
// rows scoped by owning username, with a reactive per-user change feed.
package store

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

var ErrItemNotFound = errors.New("cart item not found")

// Store is the contract the repositories program against.
type Store interface {
	// ItemsForUser returns the current rows owned by username.
	ItemsForUser(ctx context.Context, username string) ([]domain.CartItem, error)
	// WatchItems emits the current rows immediately and again after every
	// mutation of the table, until ctx is cancelled. Each watcher gets its
	// own feed; slow watchers see the latest snapshot, not a backlog.
	WatchItems(ctx context.Context, username string) <-chan []domain.CartItem
	ProductInCart(ctx context.Context, productID int64, username string) (bool, error)
	ItemByProduct(ctx context.Context, productID int64, username string) (*domain.CartItem, error)
	ItemByID(ctx context.Context, id int64, username string) (*domain.CartItem, error)
	// Insert writes the row (replacing any row with the same id) and returns
	// the generated id.
	Insert(ctx context.Context, item domain.CartItem) (int64, error)
	Update(ctx context.Context, item domain.CartItem) error
	Delete(ctx context.Context, item domain.CartItem) error
	DeleteByID(ctx context.Context, id int64, username string) error
	Clear(ctx context.Context, username string) error
	Close() error
}
