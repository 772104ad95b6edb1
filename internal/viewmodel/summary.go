package viewmodel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/observe"
	"github.com/fjod/go_storefront/internal/result"
)

// Pause between clearing the cart and reporting checkout success; the screen
// navigates back to the catalog after it.
const checkoutDelay = 1500 * time.Millisecond

// SummaryState is the checkout summary's listing state. An empty cart is a
// Success with no items, the screen renders it as "No Items Found".
type SummaryState interface {
	isSummaryState()
}

type SummaryLoading struct{}

type SummaryError struct {
	Message string
}

type SummarySuccess struct {
	Items []domain.CartItem
	Total float64
}

func (SummaryLoading) isSummaryState() {}
func (SummaryError) isSummaryState()   {}
func (SummarySuccess) isSummaryState() {}

// SummaryViewModel drives the checkout summary screen: the line listing with
// its total, the shipping address, and the checkout (clear-cart) flow.
type SummaryViewModel struct {
	carts Carts
	users Users

	state   *observe.Value[SummaryState]
	address *observe.Value[result.UIState[domain.Address]]
	deleted *observe.Value[result.UIState[bool]]

	addressGen atomic.Int64

	watchMu     sync.Mutex
	watchCancel context.CancelFunc

	clearDelay time.Duration
}

func NewSummaryViewModel(carts Carts, users Users) *SummaryViewModel {
	return &SummaryViewModel{
		carts:      carts,
		users:      users,
		state:      observe.NewValue[SummaryState](SummaryLoading{}),
		address:    observe.NewValue[result.UIState[domain.Address]](result.Idle[domain.Address]{}),
		deleted:    observe.NewValue[result.UIState[bool]](result.Idle[bool]{}),
		clearDelay: checkoutDelay,
	}
}

func (s *SummaryViewModel) State() *observe.Value[SummaryState] {
	return s.state
}

func (s *SummaryViewModel) Address() *observe.Value[result.UIState[domain.Address]] {
	return s.address
}

func (s *SummaryViewModel) Deleted() *observe.Value[result.UIState[bool]] {
	return s.deleted
}

// FetchSummary subscribes to the persisted rows; unlike the cart screen an
// empty listing is still a Success.
func (s *SummaryViewModel) FetchSummary(ctx context.Context) {
	s.watchMu.Lock()
	if s.watchCancel != nil {
		s.watchCancel()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	s.watchCancel = cancel
	s.watchMu.Unlock()

	s.state.Set(SummaryLoading{})

	go func() {
		for items := range s.carts.Items(watchCtx) {
			// A replaced subscription may still hold one received snapshot.
			if watchCtx.Err() != nil {
				return
			}
			s.state.Set(SummarySuccess{
				Items: items,
				Total: cartTotal(items),
			})
		}
	}()
}

// FetchAddress resolves the shipping address from the remote profile. An
// absent profile yields an empty address.
func (s *SummaryViewModel) FetchAddress(ctx context.Context) {
	gen := s.addressGen.Add(1)
	s.address.Set(result.Pending[domain.Address]{})

	go func() {
		res := s.users.Profile(ctx)
		if s.addressGen.Load() != gen {
			return
		}
		switch v := res.(type) {
		case result.Success[*domain.User]:
			addr := domain.Address{}
			if v.Data != nil {
				addr = v.Data.Address
			}
			s.address.Set(result.Resolved[domain.Address]{Data: addr})
		case result.Error[*domain.User]:
			s.address.Set(result.Failed[domain.Address]{Message: v.Message})
		}
	}()
}

// ClearCarts completes checkout: every row of the user is removed, and after
// a short pause the success is surfaced so the screen can navigate back.
func (s *SummaryViewModel) ClearCarts(ctx context.Context) {
	s.deleted.Set(result.Pending[bool]{})

	go func() {
		if err := s.carts.Clear(ctx); err != nil {
			s.deleted.Set(result.Failed[bool]{Message: err.Error()})
			return
		}
		time.Sleep(s.clearDelay)
		s.deleted.Set(result.Resolved[bool]{Data: true})
	}()
}
