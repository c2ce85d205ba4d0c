package repository

import (
	"context"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/store"
)

const reviewsPath = "reviews"

// ReviewRepository is read and moderate only: reviews are written by the storefront.
type ReviewRepository interface {
	List(ctx context.Context) ([]model.Review, error)
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, onChange func([]model.Review)) (store.Unsubscribe, error)
}

type reviewRepository struct {
	reviews documentCollection[model.Review]
}

func NewReviewRepository(s store.DocumentStore) ReviewRepository {
	return &reviewRepository{
		reviews: newCollection(s, reviewsPath, func(r *model.Review, key string) { r.ID = key }),
	}
}

func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	return r.reviews.list(ctx)
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	return r.reviews.get(ctx, id)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	return r.reviews.remove(ctx, id)
}

func (r *reviewRepository) Subscribe(ctx context.Context, onChange func([]model.Review)) (store.Unsubscribe, error) {
	return r.reviews.subscribe(ctx, onChange)
}
