package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/pkg/pagination"
)

// AuditFilter narrows the audit trail. Empty fields match every entry.
type AuditFilter struct {
	Action   string
	EntityID string
	AdminID  string
}

func (f AuditFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Action != "" {
		db = db.Where("action = ?", f.Action)
	}
	if f.EntityID != "" {
		db = db.Where("entity_id = ?", f.EntityID)
	}
	if f.AdminID != "" {
		db = db.Where("admin_id = ?", f.AdminID)
	}
	return db
}

type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	// List returns one page of matching entries, newest first, with the
	// acting admin preloaded, plus the number of matches.
	List(ctx context.Context, filter AuditFilter, page pagination.Params) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	if err := GetDB(ctx, r.db).Create(entry).Error; err != nil {
		return fmt.Errorf("write audit entry %s: %w", entry.Action, err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, filter AuditFilter, page pagination.Params) ([]model.AuditLog, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&model.AuditLog{}).Scopes(filter.scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	logs := make([]model.AuditLog, 0)
	if total == 0 || int64(page.Offset) >= total {
		return logs, total, nil
	}

	err := db.Scopes(filter.scope).
		Preload("Admin").
		Order("created_at desc").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, total, nil
}
