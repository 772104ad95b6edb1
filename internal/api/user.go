package api

import (
	"context"
	"strconv"

	"github.com/golang-jwt/jwt/v4"

	"github.com/fjod/go_storefront/internal/domain"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// UserID extracts the numeric user id from the login token's sub claim. The
// API publishes no verification key, so the claims are read unverified; an
// opaque or malformed token yields 0.
func (r LoginResponse) UserID() int64 {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(r.Token, claims); err != nil {
		return 0
	}
	switch sub := claims["sub"].(type) {
	case float64:
		return int64(sub)
	case string:
		id, _ := strconv.ParseInt(sub, 10, 64)
		return id
	default:
		return 0
	}
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	return postJSON[LoginResponse](ctx, c, req, "auth", "login")
}

// User fetches one profile by id.
func (c *Client) User(ctx context.Context, id int64) (domain.User, error) {
	return getJSON[domain.User](ctx, c, "users", strconv.FormatInt(id, 10))
}

// Users fetches the complete user list. The API has no filtered lookup, so
// profile-by-username callers search this list.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	return getJSON[[]domain.User](ctx, c, "users")
}
