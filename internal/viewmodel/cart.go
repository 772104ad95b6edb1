package viewmodel

import (
	"context"
	"sync"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/observe"
)

// CartState is the cart screen's top-level state.
type CartState interface {
	isCartState()
}

type CartLoading struct{}

type CartEmpty struct{}

type CartError struct {
	Message string
}

type CartSuccess struct {
	Items           []domain.CartItem
	Total           float64
	CheckoutEnabled bool
}

func (CartLoading) isCartState() {}
func (CartEmpty) isCartState()   {}
func (CartError) isCartState()   {}
func (CartSuccess) isCartState() {}

// CartViewModel drives the cart screen. Quantity intents only mutate rows;
// the reactive listing is what moves the screen state.
type CartViewModel struct {
	carts Carts

	state *observe.Value[CartState]

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
}

func NewCartViewModel(carts Carts) *CartViewModel {
	return &CartViewModel{
		carts: carts,
		state: observe.NewValue[CartState](CartLoading{}),
	}
}

func (c *CartViewModel) State() *observe.Value[CartState] {
	return c.state
}

// FetchCarts subscribes to the persisted rows. A repeated intent replaces the
// previous subscription; only the newest feed drives the state.
func (c *CartViewModel) FetchCarts(ctx context.Context) {
	c.watchMu.Lock()
	if c.watchCancel != nil {
		c.watchCancel()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	c.watchCancel = cancel
	c.watchMu.Unlock()

	c.state.Set(CartLoading{})

	go func() {
		for items := range c.carts.Items(watchCtx) {
			// A replaced subscription may still hold one received snapshot.
			if watchCtx.Err() != nil {
				return
			}
			if len(items) == 0 {
				c.state.Set(CartEmpty{})
				continue
			}
			c.state.Set(CartSuccess{
				Items:           items,
				Total:           cartTotal(items),
				CheckoutEnabled: checkoutEnabled(items),
			})
		}
	}()
}

// UpdateQuantity adjusts one row by 1 in the given direction. A decrement
// below 1 removes the row.
func (c *CartViewModel) UpdateQuantity(ctx context.Context, id int64, increment bool) {
	go func() {
		if err := c.carts.UpdateQuantity(ctx, id, increment); err != nil {
			c.state.Set(CartError{Message: err.Error()})
		}
	}()
}

func (c *CartViewModel) Remove(ctx context.Context, id int64) {
	go func() {
		if err := c.carts.DeleteByID(ctx, id); err != nil {
			c.state.Set(CartError{Message: err.Error()})
		}
	}()
}

// cartTotal is derived on every emission, never stored.
func cartTotal(items []domain.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func checkoutEnabled(items []domain.CartItem) bool {
	for _, it := range items {
		if it.Quantity > 0 {
			return true
		}
	}
	return false
}
