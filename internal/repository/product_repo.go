package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/store"
)

const productsPath = "products"

type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	products documentCollection[model.Product]
}

func NewProductRepository(s store.DocumentStore) ProductRepository {
	return &productRepository{
		products: newCollection(s, productsPath, func(p *model.Product, key string) { p.ID = key }),
	}
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	return r.products.list(ctx)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return r.products.get(ctx, id)
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	fields, err := toFields(product)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	return r.products.write(ctx, product.ID, fields)
}

func (r *productRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.products.write(ctx, id, fields)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.products.remove(ctx, id)
}
