package repository

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/store"
)

// UsernameSource yields the owner key for cart rows. The session store
// satisfies this.
type UsernameSource interface {
	Username() string
}

// CartRepository scopes every cart store operation to the logged-in user.
// Store errors propagate to the caller unmodified; the state holders turn
// them into error states.
type CartRepository struct {
	store    store.Store
	sessions UsernameSource
}

func NewCartRepository(s store.Store, sessions UsernameSource) *CartRepository {
	return &CartRepository{store: s, sessions: sessions}
}

// Items is the reactive listing of the current user's cart rows.
func (r *CartRepository) Items(ctx context.Context) <-chan []domain.CartItem {
	return r.store.WatchItems(ctx, r.sessions.Username())
}

func (r *CartRepository) Insert(ctx context.Context, item domain.CartItem) error {
	item.Username = r.sessions.Username()
	_, err := r.store.Insert(ctx, item)
	return err
}

func (r *CartRepository) Update(ctx context.Context, item domain.CartItem) error {
	item.Username = r.sessions.Username()
	return r.store.Update(ctx, item)
}

// AddProduct inserts the item, or merges its quantity into the row already
// holding the same product. A product never occupies two rows.
func (r *CartRepository) AddProduct(ctx context.Context, item domain.CartItem) error {
	username := r.sessions.Username()
	item.Username = username

	existing, err := r.store.ItemByProduct(ctx, item.ProductID, username)
	if errors.Is(err, store.ErrItemNotFound) {
		_, err := r.store.Insert(ctx, item)
		return err
	}
	if err != nil {
		return err
	}

	existing.Quantity += item.Quantity
	return r.store.Update(ctx, *existing)
}

// UpdateQuantity adjusts one row's quantity by 1. A decrement that would
// reach 0 deletes the row instead. An unknown id is a no-op.
func (r *CartRepository) UpdateQuantity(ctx context.Context, id int64, increment bool) error {
	username := r.sessions.Username()

	item, err := r.store.ItemByID(ctx, id, username)
	if errors.Is(err, store.ErrItemNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	quantity := item.Quantity - 1
	if increment {
		quantity = item.Quantity + 1
	}

	if quantity >= 1 {
		item.Quantity = quantity
		return r.store.Update(ctx, *item)
	}
	return r.store.DeleteByID(ctx, id, username)
}

func (r *CartRepository) Delete(ctx context.Context, item domain.CartItem) error {
	item.Username = r.sessions.Username()
	return r.store.Delete(ctx, item)
}

func (r *CartRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.store.DeleteByID(ctx, id, r.sessions.Username())
}

func (r *CartRepository) ProductInCart(ctx context.Context, productID int64) (bool, error) {
	return r.store.ProductInCart(ctx, productID, r.sessions.Username())
}

// ItemByProduct returns nil without error when the product is not in the
// cart.
func (r *CartRepository) ItemByProduct(ctx context.Context, productID int64) (*domain.CartItem, error) {
	item, err := r.store.ItemByProduct(ctx, productID, r.sessions.Username())
	if errors.Is(err, store.ErrItemNotFound) {
		return nil, nil
	}
	return item, err
}

// Clear removes every row owned by the current user.
func (r *CartRepository) Clear(ctx context.Context) error {
	return r.store.Clear(ctx, r.sessions.Username())
}
