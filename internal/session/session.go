// Package session persists the authentication scope of the app: token,
// logged-in flag and current username. Values outlive process restarts until
// an explicit clear.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/fjod/go_storefront/internal/observe"
)

const (
	keyAuthToken = "auth_token"
	keyIsLogin   = "is_login"
	keyUsername  = "username"
	keyUserID    = "user_id"
)

// One key/value table is all the session scope needs; schema is created
// inline instead of going through the migration tooling.
const schema = `
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)
`

// Store keeps the persisted preferences mirrored in watchable cells, so
// reads are cheap and every field can be observed as a stream.
type Store struct {
	db *sql.DB

	token    *observe.Value[string]
	isLogin  *observe.Value[bool]
	username *observe.Value[string]
	userID   *observe.Value[int64]
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping preferences database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create preferences table: %w", err)
	}

	s := &Store{db: db}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	token, err := s.get(keyAuthToken)
	if err != nil {
		return err
	}
	isLogin, err := s.get(keyIsLogin)
	if err != nil {
		return err
	}
	username, err := s.get(keyUsername)
	if err != nil {
		return err
	}
	userID, err := s.get(keyUserID)
	if err != nil {
		return err
	}

	id, _ := strconv.ParseInt(userID, 10, 64)
	s.token = observe.NewValue(token)
	s.isLogin = observe.NewValue(isLogin == "true")
	s.username = observe.NewValue(username)
	s.userID = observe.NewValue(id)
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}

func (s *Store) remove(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
			return fmt.Errorf("failed to remove preference %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) Token() string    { return s.token.Get() }
func (s *Store) IsLogin() bool    { return s.isLogin.Get() }
func (s *Store) Username() string { return s.username.Get() }
func (s *Store) UserID() int64    { return s.userID.Get() }

func (s *Store) WatchIsLogin(ctx context.Context) <-chan bool {
	return s.isLogin.Watch(ctx)
}

func (s *Store) WatchUsername(ctx context.Context) <-chan string {
	return s.username.Watch(ctx)
}

func (s *Store) SaveToken(token string) error {
	if err := s.set(keyAuthToken, token); err != nil {
		return err
	}
	s.token.Set(token)
	return nil
}

func (s *Store) SaveUsername(username string) error {
	if err := s.set(keyUsername, username); err != nil {
		return err
	}
	s.username.Set(username)
	return nil
}

func (s *Store) SaveUserID(id int64) error {
	if err := s.set(keyUserID, strconv.FormatInt(id, 10)); err != nil {
		return err
	}
	s.userID.Set(id)
	return nil
}

func (s *Store) SetLogin(isLogin bool) error {
	if err := s.set(keyIsLogin, strconv.FormatBool(isLogin)); err != nil {
		return err
	}
	s.isLogin.Set(isLogin)
	return nil
}

// Clear drops the token and the logged-in flag. The username stays around so
// the local cart rows keyed by it can be found on the next login.
func (s *Store) Clear() error {
	if err := s.remove(keyAuthToken, keyIsLogin, keyUserID); err != nil {
		return err
	}
	s.token.Set("")
	s.isLogin.Set(false)
	s.userID.Set(0)
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
