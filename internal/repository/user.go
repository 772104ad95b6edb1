package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/fjod/go_storefront/internal/api"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/result"
)

// UserAPI is the slice of the remote API the user repository consumes.
type UserAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error)
	User(ctx context.Context, id int64) (domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
}

type UserRepository struct {
	users    UserAPI
	sessions UsernameSource
	validate *validator.Validate
}

func NewUserRepository(users UserAPI, sessions UsernameSource) *UserRepository {
	return &UserRepository{
		users:    users,
		sessions: sessions,
		validate: validator.New(),
	}
}

// Login exchanges credentials for a token. Errors return raw; the login
// holder owns turning them into a failed state.
func (r *UserRepository) Login(ctx context.Context, username, password string) (api.LoginResponse, error) {
	req := api.LoginRequest{Username: username, Password: password}
	if err := r.validate.Struct(req); err != nil {
		return api.LoginResponse{}, err
	}
	return r.users.Login(ctx, req)
}

func (r *UserRepository) ProfileByID(ctx context.Context, id int64) result.Result[domain.User] {
	return call(func() (domain.User, error) {
		return r.users.User(ctx, id)
	})
}

// ProfileByUsername looks a profile up by scanning the full user list; the
// remote API has no filtered endpoint. An absent username is a success with
// a nil profile, not an error.
func (r *UserRepository) ProfileByUsername(ctx context.Context, username string) result.Result[*domain.User] {
	return call(func() (*domain.User, error) {
		users, err := r.users.Users(ctx)
		if err != nil {
			return nil, err
		}
		for i := range users {
			if users[i].Username == username {
				return &users[i], nil
			}
		}
		return nil, nil
	})
}

// Profile resolves the profile of the persisted username.
func (r *UserRepository) Profile(ctx context.Context) result.Result[*domain.User] {
	return r.ProfileByUsername(ctx, r.sessions.Username())
}
