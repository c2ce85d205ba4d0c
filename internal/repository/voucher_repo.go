package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/store"
)

const vouchersPath = "vouchers"

// VoucherRepository returns vouchers with their persisted status; callers derive the effective one.
type VoucherRepository interface {
	List(ctx context.Context) ([]model.Voucher, error)
	GetByID(ctx context.Context, id string) (*model.Voucher, error)
	Create(ctx context.Context, voucher *model.Voucher) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, onChange func([]model.Voucher)) (store.Unsubscribe, error)
}

type voucherRepository struct {
	vouchers documentCollection[model.Voucher]
}

func NewVoucherRepository(s store.DocumentStore) VoucherRepository {
	return &voucherRepository{
		vouchers: newCollection(s, vouchersPath, func(v *model.Voucher, key string) { v.ID = key }),
	}
}

func (r *voucherRepository) List(ctx context.Context) ([]model.Voucher, error) {
	return r.vouchers.list(ctx)
}

func (r *voucherRepository) GetByID(ctx context.Context, id string) (*model.Voucher, error) {
	return r.vouchers.get(ctx, id)
}

func (r *voucherRepository) Create(ctx context.Context, voucher *model.Voucher) error {
	if voucher.ID == "" {
		voucher.ID = uuid.NewString()
	}
	fields, err := toFields(voucher)
	if err != nil {
		return fmt.Errorf("encode voucher: %w", err)
	}
	return r.vouchers.write(ctx, voucher.ID, fields)
}

func (r *voucherRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.vouchers.write(ctx, id, fields)
}

func (r *voucherRepository) Delete(ctx context.Context, id string) error {
	return r.vouchers.remove(ctx, id)
}

func (r *voucherRepository) Subscribe(ctx context.Context, onChange func([]model.Voucher)) (store.Unsubscribe, error) {
	return r.vouchers.subscribe(ctx, onChange)
}
