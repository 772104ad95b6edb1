package repository

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_storefront/internal/api"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/result"
)

type mockUserAPI struct {
	loginResp api.LoginResponse
	loginErr  error
	users     []domain.User
	usersErr  error

	loginCalls atomic.Int64
}

func (m *mockUserAPI) Login(context.Context, api.LoginRequest) (api.LoginResponse, error) {
	m.loginCalls.Add(1)
	return m.loginResp, m.loginErr
}

func (m *mockUserAPI) User(_ context.Context, id int64) (domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, &api.HTTPError{StatusCode: 404, Status: "404 Not Found"}
}

func (m *mockUserAPI) Users(context.Context) ([]domain.User, error) {
	return m.users, m.usersErr
}

type staticUsername string

func (s staticUsername) Username() string { return string(s) }

func TestLogin_ReturnsResponse(t *testing.T) {
	users := &mockUserAPI{loginResp: api.LoginResponse{Token: "tok-123"}}
	sut := NewUserRepository(users, staticUsername(""))

	resp, err := sut.Login(context.Background(), "johnd", "m38rmF$")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, int64(1), users.loginCalls.Load())
}

func TestLogin_PropagatesError(t *testing.T) {
	users := &mockUserAPI{loginErr: &api.HTTPError{StatusCode: 401, Status: "401 Unauthorized"}}
	sut := NewUserRepository(users, staticUsername(""))

	_, err := sut.Login(context.Background(), "johnd", "wrong")

	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.StatusCode)
}

func TestLogin_MissingCredentialsFailValidation(t *testing.T) {
	users := &mockUserAPI{}
	sut := NewUserRepository(users, staticUsername(""))

	_, err := sut.Login(context.Background(), "", "")

	require.Error(t, err)
	assert.Zero(t, users.loginCalls.Load(), "invalid input must not reach the network")
}

func TestProfileByID_Success(t *testing.T) {
	users := &mockUserAPI{users: []domain.User{{ID: 2, Username: "mor_2314"}}}
	sut := NewUserRepository(users, staticUsername(""))

	res := sut.ProfileByID(context.Background(), 2)

	success, ok := res.(result.Success[domain.User])
	require.True(t, ok, "expected success, got %T", res)
	assert.Equal(t, "mor_2314", success.Data.Username)
}

func TestProfileByUsername_Found(t *testing.T) {
	users := &mockUserAPI{users: []domain.User{
		{ID: 1, Username: "johnd"},
		{ID: 2, Username: "mor_2314"},
	}}
	sut := NewUserRepository(users, staticUsername(""))

	res := sut.ProfileByUsername(context.Background(), "mor_2314")

	success, ok := res.(result.Success[*domain.User])
	require.True(t, ok, "expected success, got %T", res)
	require.NotNil(t, success.Data)
	assert.Equal(t, int64(2), success.Data.ID)
}

func TestProfileByUsername_AbsentIsSuccessWithNil(t *testing.T) {
	users := &mockUserAPI{users: []domain.User{{ID: 1, Username: "johnd"}}}
	sut := NewUserRepository(users, staticUsername(""))

	res := sut.ProfileByUsername(context.Background(), "nobody")

	success, ok := res.(result.Success[*domain.User])
	require.True(t, ok, "an unknown username is not an error, got %T", res)
	assert.Nil(t, success.Data)
}

func TestProfile_UsesPersistedUsername(t *testing.T) {
	users := &mockUserAPI{users: []domain.User{{ID: 1, Username: "johnd"}}}
	sut := NewUserRepository(users, staticUsername("johnd"))

	res := sut.Profile(context.Background())

	success, ok := res.(result.Success[*domain.User])
	require.True(t, ok, "expected success, got %T", res)
	require.NotNil(t, success.Data)
	assert.Equal(t, "johnd", success.Data.Username)
}

func TestProfile_NetworkErrorClassified(t *testing.T) {
	users := &mockUserAPI{usersErr: &api.HTTPError{StatusCode: 500, Status: "500 Internal Server Error"}}
	sut := NewUserRepository(users, staticUsername("johnd"))

	res := sut.Profile(context.Background())

	failure, ok := res.(result.Error[*domain.User])
	require.True(t, ok, "expected error, got %T", res)
	assert.Equal(t, "An error occurred", failure.Message)
}
