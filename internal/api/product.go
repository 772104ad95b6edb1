package api

import (
	"context"
	"strconv"

	"github.com/fjod/go_storefront/internal/domain"
)

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	return getJSON[[]domain.Product](ctx, c, "products")
}

// Product fetches one catalog entry by id.
func (c *Client) Product(ctx context.Context, id int64) (domain.Product, error) {
	return getJSON[domain.Product](ctx, c, "products", strconv.FormatInt(id, 10))
}

// Categories fetches the list of catalog categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return getJSON[[]string](ctx, c, "products", "categories")
}

// ProductsByCategory fetches the catalog entries of one category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return getJSON[[]domain.Product](ctx, c, "products", "category", category)
}
