package viewmodel

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fjod/go_storefront/internal/api"
	"github.com/fjod/go_storefront/internal/observe"
	"github.com/fjod/go_storefront/internal/result"
)

const loginFailedFallback = "Login Failed"

// LoginViewModel drives the login screen. Idle → Loading → Success | Failed;
// Loading only on an explicit submit, Failed never auto-retries, Success
// persists the session before surfacing.
type LoginViewModel struct {
	users    Users
	sessions Sessions

	login   *observe.Value[result.UIState[api.LoginResponse]]
	isLogin *observe.Value[bool]

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
}

func NewLoginViewModel(users Users, sessions Sessions) *LoginViewModel {
	return &LoginViewModel{
		users:    users,
		sessions: sessions,
		login:    observe.NewValue[result.UIState[api.LoginResponse]](result.Idle[api.LoginResponse]{}),
		isLogin:  observe.NewValue(false),
	}
}

func (l *LoginViewModel) Login() *observe.Value[result.UIState[api.LoginResponse]] {
	return l.login
}

func (l *LoginViewModel) IsLogin() *observe.Value[bool] {
	return l.isLogin
}

// CheckIsLogin mirrors the persisted logged-in flag into view state.
func (l *LoginViewModel) CheckIsLogin(ctx context.Context) {
	l.watchMu.Lock()
	if l.watchCancel != nil {
		l.watchCancel()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	l.watchCancel = cancel
	l.watchMu.Unlock()

	go func() {
		for isLogin := range l.sessions.WatchIsLogin(watchCtx) {
			// A replaced subscription may still hold one received value.
			if watchCtx.Err() != nil {
				return
			}
			l.isLogin.Set(isLogin)
		}
	}()
}

// Submit exchanges credentials for a session. On success the token, user id,
// username and logged-in flag are persisted before the state resolves; on
// failure nothing is persisted.
func (l *LoginViewModel) Submit(ctx context.Context, username, password string) {
	l.login.Set(result.Pending[api.LoginResponse]{})

	go func() {
		resp, err := l.users.Login(ctx, username, password)
		if err != nil {
			message := err.Error()
			if message == "" {
				message = loginFailedFallback
			}
			l.login.Set(result.Failed[api.LoginResponse]{Message: message})
			return
		}

		if err := l.persist(resp, username); err != nil {
			logrus.WithError(err).Error("failed to persist session")
			l.login.Set(result.Failed[api.LoginResponse]{Message: err.Error()})
			return
		}

		l.login.Set(result.Resolved[api.LoginResponse]{Data: resp})
	}()
}

func (l *LoginViewModel) persist(resp api.LoginResponse, username string) error {
	if err := l.sessions.SaveToken(resp.Token); err != nil {
		return err
	}
	if err := l.sessions.SaveUsername(username); err != nil {
		return err
	}
	if err := l.sessions.SaveUserID(resp.UserID()); err != nil {
		return err
	}
	return l.sessions.SetLogin(true)
}
