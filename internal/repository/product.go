package repository

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/result"
)

// Catalog is the slice of the remote API the product repository consumes.
type Catalog interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
}

// ProductRepository funnels every catalog call through the error translator.
// Calls are one-shot, no retries; concurrent fetches of the same listing are
// collapsed into one request.
type ProductRepository struct {
	catalog Catalog
	sfg     singleflight.Group
}

func NewProductRepository(catalog Catalog) *ProductRepository {
	return &ProductRepository{catalog: catalog}
}

func (r *ProductRepository) Products(ctx context.Context) result.Result[[]domain.Product] {
	return call(func() ([]domain.Product, error) {
		v, err, _ := r.sfg.Do("products", func() (interface{}, error) {
			return r.catalog.Products(ctx)
		})
		if err != nil {
			return nil, err
		}
		return v.([]domain.Product), nil
	})
}

func (r *ProductRepository) ProductByID(ctx context.Context, id int64) result.Result[domain.Product] {
	return call(func() (domain.Product, error) {
		return r.catalog.Product(ctx, id)
	})
}

func (r *ProductRepository) Categories(ctx context.Context) result.Result[[]string] {
	return call(func() ([]string, error) {
		v, err, _ := r.sfg.Do("categories", func() (interface{}, error) {
			return r.catalog.Categories(ctx)
		})
		if err != nil {
			return nil, err
		}
		return v.([]string), nil
	})
}

func (r *ProductRepository) ProductsByCategory(ctx context.Context, category string) result.Result[[]domain.Product] {
	return call(func() ([]domain.Product, error) {
		v, err, _ := r.sfg.Do("category:"+category, func() (interface{}, error) {
			return r.catalog.ProductsByCategory(ctx, category)
		})
		if err != nil {
			return nil, err
		}
		return v.([]domain.Product), nil
	})
}
