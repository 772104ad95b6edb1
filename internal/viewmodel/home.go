package viewmodel

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/observe"
	"github.com/fjod/go_storefront/internal/result"
)

// HomeViewModel drives the catalog screen: product listing with an optional
// category filter, the category chips, the cart badge and the profile sheet.
type HomeViewModel struct {
	products Products
	carts    Carts
	users    Users
	sessions Sessions

	productList *observe.Value[result.UIState[[]domain.Product]]
	categories  *observe.Value[result.UIState[[]string]]
	selected    *observe.Value[string]
	cartCount   *observe.Value[int]
	user        *observe.Value[result.UIState[domain.User]]

	productsGen   atomic.Int64
	categoriesGen atomic.Int64
	userGen       atomic.Int64

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
}

func NewHomeViewModel(products Products, carts Carts, users Users, sessions Sessions) *HomeViewModel {
	return &HomeViewModel{
		products:    products,
		carts:       carts,
		users:       users,
		sessions:    sessions,
		productList: observe.NewValue[result.UIState[[]domain.Product]](result.Idle[[]domain.Product]{}),
		categories:  observe.NewValue[result.UIState[[]string]](result.Idle[[]string]{}),
		selected:    observe.NewValue(""),
		cartCount:   observe.NewValue(0),
		user:        observe.NewValue[result.UIState[domain.User]](result.Idle[domain.User]{}),
	}
}

func (h *HomeViewModel) Products() *observe.Value[result.UIState[[]domain.Product]] {
	return h.productList
}

func (h *HomeViewModel) Categories() *observe.Value[result.UIState[[]string]] {
	return h.categories
}

func (h *HomeViewModel) SelectedCategory() *observe.Value[string] {
	return h.selected
}

func (h *HomeViewModel) CartCount() *observe.Value[int] {
	return h.cartCount
}

func (h *HomeViewModel) User() *observe.Value[result.UIState[domain.User]] {
	return h.user
}

// FetchProducts loads the catalog, filtered by the selected category when one
// is set. Overlapping fetches keep only the newest result.
func (h *HomeViewModel) FetchProducts(ctx context.Context) {
	gen := h.productsGen.Add(1)
	category := h.selected.Get()
	h.productList.Set(result.Pending[[]domain.Product]{})

	go func() {
		var res result.Result[[]domain.Product]
		if category == "" {
			res = h.products.Products(ctx)
		} else {
			res = h.products.ProductsByCategory(ctx, category)
		}
		if h.productsGen.Load() != gen {
			return
		}
		h.productList.Set(toUIState(res))
	}()
}

func (h *HomeViewModel) FetchCategories(ctx context.Context) {
	gen := h.categoriesGen.Add(1)
	h.categories.Set(result.Pending[[]string]{})

	go func() {
		res := h.products.Categories(ctx)
		if h.categoriesGen.Load() != gen {
			return
		}
		h.categories.Set(toUIState(res))
	}()
}

// ToggleCategory selects the filter, or clears it back to "all" when the
// already-selected category is tapped again.
func (h *HomeViewModel) ToggleCategory(category string) {
	h.selected.Update(func(current string) string {
		if current == category {
			return ""
		}
		return category
	})
}

// FetchUser resolves the logged-in profile. An absent remote profile shows as
// an empty one rather than an error.
func (h *HomeViewModel) FetchUser(ctx context.Context) {
	gen := h.userGen.Add(1)
	h.user.Set(result.Pending[domain.User]{})

	go func() {
		res := h.users.Profile(ctx)
		if h.userGen.Load() != gen {
			return
		}
		switch v := res.(type) {
		case result.Success[*domain.User]:
			profile := domain.User{}
			if v.Data != nil {
				profile = *v.Data
			}
			h.user.Set(result.Resolved[domain.User]{Data: profile})
		case result.Error[*domain.User]:
			h.user.Set(result.Failed[domain.User]{Message: v.Message})
		}
	}()
}

// WatchCart keeps the cart badge in sync with the persisted rows. A repeated
// intent replaces the previous subscription.
func (h *HomeViewModel) WatchCart(ctx context.Context) {
	h.watchMu.Lock()
	if h.watchCancel != nil {
		h.watchCancel()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	h.watchCancel = cancel
	h.watchMu.Unlock()

	go func() {
		for items := range h.carts.Items(watchCtx) {
			// A replaced subscription may still hold one received snapshot.
			if watchCtx.Err() != nil {
				return
			}
			h.cartCount.Set(len(items))
		}
	}()
}

// Logout clears the session scope and the user's persisted cart rows.
func (h *HomeViewModel) Logout(ctx context.Context) {
	go func() {
		if err := h.carts.Clear(ctx); err != nil {
			logrus.WithError(err).Error("failed to clear cart on logout")
		}
		if err := h.sessions.Clear(); err != nil {
			logrus.WithError(err).Error("failed to clear session")
		}
	}()
}
