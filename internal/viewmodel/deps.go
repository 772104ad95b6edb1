// Package viewmodel holds the per-screen state holders. Each holder owns its
// observable view state, reacts to explicit intents and drives repository
// calls; screens only read the state and emit intents.
package viewmodel

import (
	"context"

	"github.com/fjod/go_storefront/internal/api"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/result"
)

// Consumer-side views of the repositories and the session store. The holders
// define what they need; the concrete types in internal/repository and
// internal/session satisfy them.

type Carts interface {
	Items(ctx context.Context) <-chan []domain.CartItem
	AddProduct(ctx context.Context, item domain.CartItem) error
	UpdateQuantity(ctx context.Context, id int64, increment bool) error
	DeleteByID(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

type Products interface {
	Products(ctx context.Context) result.Result[[]domain.Product]
	ProductByID(ctx context.Context, id int64) result.Result[domain.Product]
	Categories(ctx context.Context) result.Result[[]string]
	ProductsByCategory(ctx context.Context, category string) result.Result[[]domain.Product]
}

type Users interface {
	Login(ctx context.Context, username, password string) (api.LoginResponse, error)
	Profile(ctx context.Context) result.Result[*domain.User]
}

type Sessions interface {
	SaveToken(token string) error
	SaveUsername(username string) error
	SaveUserID(id int64) error
	SetLogin(isLogin bool) error
	Clear() error
	WatchIsLogin(ctx context.Context) <-chan bool
}

// toUIState folds a repository result into the screen-local state wrapper.
func toUIState[T any](r result.Result[T]) result.UIState[T] {
	switch v := r.(type) {
	case result.Success[T]:
		return result.Resolved[T]{Data: v.Data}
	case result.Error[T]:
		return result.Failed[T]{Message: v.Message}
	default:
		return result.Pending[T]{}
	}
}
