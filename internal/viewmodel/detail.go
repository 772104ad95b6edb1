package viewmodel

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/observe"
	"github.com/fjod/go_storefront/internal/result"
)

// Short pause before reporting an add-to-cart as done, so the button feedback
// is visible.
const addToCartDelay = time.Second

// DetailViewModel drives the product detail screen: the product itself and
// the outcome of adding it to the cart.
type DetailViewModel struct {
	products Products
	carts    Carts

	detail   *observe.Value[result.UIState[domain.Product]]
	inserted *observe.Value[result.UIState[int]]

	detailGen atomic.Int64

	addDelay time.Duration
}

func NewDetailViewModel(products Products, carts Carts) *DetailViewModel {
	return &DetailViewModel{
		products: products,
		carts:    carts,
		detail:   observe.NewValue[result.UIState[domain.Product]](result.Idle[domain.Product]{}),
		inserted: observe.NewValue[result.UIState[int]](result.Idle[int]{}),
		addDelay: addToCartDelay,
	}
}

func (d *DetailViewModel) Detail() *observe.Value[result.UIState[domain.Product]] {
	return d.detail
}

func (d *DetailViewModel) Inserted() *observe.Value[result.UIState[int]] {
	return d.inserted
}

func (d *DetailViewModel) FetchDetail(ctx context.Context, id int64) {
	gen := d.detailGen.Add(1)
	d.detail.Set(result.Pending[domain.Product]{})

	go func() {
		res := d.products.ProductByID(ctx, id)
		if d.detailGen.Load() != gen {
			return
		}
		d.detail.Set(toUIState(res))
	}()
}

// AddToCart merges the item into the persisted cart. Quantities of an already
// present product are summed, never duplicated into a second row.
func (d *DetailViewModel) AddToCart(ctx context.Context, item domain.CartItem) {
	d.inserted.Set(result.Pending[int]{})

	go func() {
		time.Sleep(d.addDelay)
		if err := d.carts.AddProduct(ctx, item); err != nil {
			d.inserted.Set(result.Failed[int]{Message: err.Error()})
			return
		}
		d.inserted.Set(result.Resolved[int]{Data: 1})
	}()
}
