package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/fjod/go_storefront/internal/domain"
)

// SQLiteStore persists cart rows in an embedded sqlite database. Writers are
// serialized by the database; watchers are notified in-process after every
// successful mutation.
type SQLiteStore struct {
	db *sql.DB

	mu       sync.Mutex
	watchers map[int]chan struct{}
	nextID   int
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{
		db:       db,
		watchers: make(map[int]chan struct{}),
	}, nil
}

func (s *SQLiteStore) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ItemsForUser(ctx context.Context, username string) ([]domain.CartItem, error) {
	query := `
		SELECT id, product_id, title, price, quantity, image_url, username
		FROM carts
		WHERE username = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var it domain.CartItem
		err := rows.Scan(
			&it.ID,
			&it.ProductID,
			&it.Title,
			&it.Price,
			&it.Quantity,
			&it.ImageURL,
			&it.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// WatchItems re-queries the table after each mutation and pushes the fresh
// snapshot. The initial snapshot is emitted before any mutation arrives.
func (s *SQLiteStore) WatchItems(ctx context.Context, username string) <-chan []domain.CartItem {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	signal := make(chan struct{}, 1)
	signal <- struct{}{} // trigger the initial snapshot
	s.watchers[id] = signal
	s.mu.Unlock()

	out := make(chan []domain.CartItem)
	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
			}

			items, err := s.ItemsForUser(ctx, username)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logrus.WithError(err).Error("cart watch query failed")
				continue
			}

			select {
			case out <- items:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (s *SQLiteStore) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, signal := range s.watchers {
		select {
		case signal <- struct{}{}:
		default:
		}
	}
}

func (s *SQLiteStore) ProductInCart(ctx context.Context, productID int64, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM carts WHERE product_id = ? AND username = ? LIMIT 1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, productID, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check cart item: %w", err)
	}
	return exists, nil
}

func (s *SQLiteStore) ItemByProduct(ctx context.Context, productID int64, username string) (*domain.CartItem, error) {
	query := `
		SELECT id, product_id, title, price, quantity, image_url, username
		FROM carts
		WHERE product_id = ? AND username = ?
		LIMIT 1
	`
	return s.queryItem(ctx, query, productID, username)
}

func (s *SQLiteStore) ItemByID(ctx context.Context, id int64, username string) (*domain.CartItem, error) {
	query := `
		SELECT id, product_id, title, price, quantity, image_url, username
		FROM carts
		WHERE id = ? AND username = ?
		LIMIT 1
	`
	return s.queryItem(ctx, query, id, username)
}

func (s *SQLiteStore) queryItem(ctx context.Context, query string, args ...any) (*domain.CartItem, error) {
	var it domain.CartItem
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&it.ID,
		&it.ProductID,
		&it.Title,
		&it.Price,
		&it.Quantity,
		&it.ImageURL,
		&it.Username,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}
	return &it, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, item domain.CartItem) (int64, error) {
	query := `
		INSERT OR REPLACE INTO carts (product_id, title, price, quantity, image_url, username)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		item.ProductID,
		item.Title,
		item.Price,
		item.Quantity,
		item.ImageURL,
		item.Username,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert cart item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated id: %w", err)
	}

	s.notify()
	return id, nil
}

func (s *SQLiteStore) Update(ctx context.Context, item domain.CartItem) error {
	query := `
		UPDATE carts
		SET product_id = ?, title = ?, price = ?, quantity = ?, image_url = ?
		WHERE id = ? AND username = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		item.ProductID,
		item.Title,
		item.Price,
		item.Quantity,
		item.ImageURL,
		item.ID,
		item.Username,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	s.notify()
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, item domain.CartItem) error {
	return s.DeleteByID(ctx, item.ID, item.Username)
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64, username string) error {
	query := `DELETE FROM carts WHERE id = ? AND username = ?`

	if _, err := s.db.ExecContext(ctx, query, id, username); err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	s.notify()
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, username string) error {
	query := `DELETE FROM carts WHERE username = ?`

	if _, err := s.db.ExecContext(ctx, query, username); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.notify()
	return nil
}
