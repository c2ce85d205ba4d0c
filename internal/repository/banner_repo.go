package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/store"
)

const bannersPath = "banners"

type BannerRepository interface {
	List(ctx context.Context) ([]model.Banner, error)
	GetByID(ctx context.Context, id string) (*model.Banner, error)
	Create(ctx context.Context, banner *model.Banner) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type bannerRepository struct {
	banners documentCollection[model.Banner]
}

func NewBannerRepository(s store.DocumentStore) BannerRepository {
	return &bannerRepository{
		banners: newCollection(s, bannersPath, func(b *model.Banner, key string) { b.ID = key }),
	}
}

func (r *bannerRepository) List(ctx context.Context) ([]model.Banner, error) {
	return r.banners.list(ctx)
}

func (r *bannerRepository) GetByID(ctx context.Context, id string) (*model.Banner, error) {
	return r.banners.get(ctx, id)
}

func (r *bannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	if banner.ID == "" {
		banner.ID = uuid.NewString()
	}
	fields, err := toFields(banner)
	if err != nil {
		return fmt.Errorf("encode banner: %w", err)
	}
	return r.banners.write(ctx, banner.ID, fields)
}

func (r *bannerRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.banners.write(ctx, id, fields)
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	return r.banners.remove(ctx, id)
}
