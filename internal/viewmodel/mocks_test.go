package viewmodel

import (
	"context"
	"sync"

	"github.com/fjod/go_storefront/internal/api"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/observe"
	"github.com/fjod/go_storefront/internal/result"
)

type mockCarts struct {
	mu  sync.Mutex
	err error

	feed *observe.Value[[]domain.CartItem]

	added      []domain.CartItem
	clearCalls int
}

func newMockCarts(items ...domain.CartItem) *mockCarts {
	return &mockCarts{feed: observe.NewValue(items)}
}

func (m *mockCarts) Items(ctx context.Context) <-chan []domain.CartItem {
	return m.feed.Watch(ctx)
}

func (m *mockCarts) AddProduct(_ context.Context, item domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, item)
	return nil
}

func (m *mockCarts) UpdateQuantity(_ context.Context, id int64, increment bool) error {
	if m.err != nil {
		return m.err
	}
	m.feed.Update(func(items []domain.CartItem) []domain.CartItem {
		next := make([]domain.CartItem, 0, len(items))
		for _, it := range items {
			if it.ID != id {
				next = append(next, it)
				continue
			}
			if increment {
				it.Quantity++
			} else {
				it.Quantity--
			}
			if it.Quantity >= 1 {
				next = append(next, it)
			}
		}
		return next
	})
	return nil
}

func (m *mockCarts) DeleteByID(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.feed.Update(func(items []domain.CartItem) []domain.CartItem {
		next := make([]domain.CartItem, 0, len(items))
		for _, it := range items {
			if it.ID != id {
				next = append(next, it)
			}
		}
		return next
	})
	return nil
}

func (m *mockCarts) Clear(context.Context) error {
	m.mu.Lock()
	m.clearCalls++
	err := m.err
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.feed.Set([]domain.CartItem{})
	return nil
}

func (m *mockCarts) addedItems() []domain.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CartItem(nil), m.added...)
}

func (m *mockCarts) clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearCalls
}

type mockProducts struct {
	products   result.Result[[]domain.Product]
	byCategory map[string]result.Result[[]domain.Product]
	byID       result.Result[domain.Product]
	categories result.Result[[]string]

	// When set, Products blocks until the channel is closed.
	productsGate chan struct{}
}

func (m *mockProducts) Products(context.Context) result.Result[[]domain.Product] {
	if m.productsGate != nil {
		<-m.productsGate
	}
	return m.products
}

func (m *mockProducts) ProductByID(context.Context, int64) result.Result[domain.Product] {
	return m.byID
}

func (m *mockProducts) Categories(context.Context) result.Result[[]string] {
	return m.categories
}

func (m *mockProducts) ProductsByCategory(_ context.Context, category string) result.Result[[]domain.Product] {
	if res, ok := m.byCategory[category]; ok {
		return res
	}
	return m.products
}

type mockUsers struct {
	loginResp api.LoginResponse
	loginErr  error
	profile   result.Result[*domain.User]
}

func (m *mockUsers) Login(context.Context, string, string) (api.LoginResponse, error) {
	return m.loginResp, m.loginErr
}

func (m *mockUsers) Profile(context.Context) result.Result[*domain.User] {
	return m.profile
}

type mockSessions struct {
	mu sync.Mutex

	token    string
	username string
	userID   int64
	isLogin  *observe.Value[bool]

	cleared  int
	persists []string
	err      error
}

func newMockSessions() *mockSessions {
	return &mockSessions{isLogin: observe.NewValue(false)}
}

func (m *mockSessions) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.token = token
	m.persists = append(m.persists, "token")
	return nil
}

func (m *mockSessions) SaveUsername(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.username = username
	m.persists = append(m.persists, "username")
	return nil
}

func (m *mockSessions) SaveUserID(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.userID = id
	m.persists = append(m.persists, "user_id")
	return nil
}

func (m *mockSessions) SetLogin(isLogin bool) error {
	m.mu.Lock()
	if m.err != nil {
		m.mu.Unlock()
		return m.err
	}
	m.persists = append(m.persists, "is_login")
	m.mu.Unlock()
	m.isLogin.Set(isLogin)
	return nil
}

func (m *mockSessions) Clear() error {
	m.mu.Lock()
	m.cleared++
	m.token = ""
	m.mu.Unlock()
	m.isLogin.Set(false)
	return nil
}

func (m *mockSessions) WatchIsLogin(ctx context.Context) <-chan bool {
	return m.isLogin.Watch(ctx)
}

func (m *mockSessions) savedToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *mockSessions) savedUsername() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.username
}

func (m *mockSessions) savedUserID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID
}

func (m *mockSessions) persisted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.persists...)
}

func (m *mockSessions) clearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}
