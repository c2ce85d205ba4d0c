package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/store"
)

const revenuePath = "revenue"

type RevenueRepository interface {
	List(ctx context.Context) ([]model.RevenueRecord, error)
	// Append stores records under new keys and fills their ids.
	Append(ctx context.Context, records []model.RevenueRecord) error
	Subscribe(ctx context.Context, onChange func([]model.RevenueRecord)) (store.Unsubscribe, error)
}

type revenueRepository struct {
	records documentCollection[model.RevenueRecord]
}

func NewRevenueRepository(s store.DocumentStore) RevenueRepository {
	return &revenueRepository{
		records: newCollection(s, revenuePath, func(r *model.RevenueRecord, key string) { r.ID = key }),
	}
}

func (r *revenueRepository) List(ctx context.Context) ([]model.RevenueRecord, error) {
	return r.records.list(ctx)
}

func (r *revenueRepository) Append(ctx context.Context, records []model.RevenueRecord) error {
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
		if err := r.records.write(ctx, records[i].ID, records[i].StoreFields()); err != nil {
			return err
		}
	}
	return nil
}

func (r *revenueRepository) Subscribe(ctx context.Context, onChange func([]model.RevenueRecord)) (store.Unsubscribe, error) {
	return r.records.subscribe(ctx, onChange)
}
