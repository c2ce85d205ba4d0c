package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionUpdateOrderStatus = "UPDATE_ORDER_STATUS"
	ActionRecordRevenue     = "RECORD_REVENUE"
	ActionUpdateUserStatus  = "UPDATE_USER_STATUS"
	ActionUpdateUserRole    = "UPDATE_USER_ROLE"
	ActionDeleteUser        = "DELETE_USER"
	ActionCreateVoucher     = "CREATE_VOUCHER"
	ActionUpdateVoucher     = "UPDATE_VOUCHER"
	ActionDeleteVoucher     = "DELETE_VOUCHER"
	ActionDeleteReview      = "DELETE_REVIEW"
	ActionCreateBanner      = "CREATE_BANNER"
	ActionUpdateBanner      = "UPDATE_BANNER"
	ActionDeleteBanner      = "DELETE_BANNER"
	ActionCreateProduct     = "CREATE_PRODUCT"
	ActionUpdateProduct     = "UPDATE_PRODUCT"
	ActionDeleteProduct     = "DELETE_PRODUCT"
)

// AuditLog records which admin changed what in the document store.
type AuditLog struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID    *uuid.UUID    `gorm:"type:uuid;index" json:"admin_id"`
	Admin      *AdminAccount `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Action     string        `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string        `gorm:"type:varchar(128);index" json:"entity_id"`
	EntityName string        `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string        `gorm:"type:text" json:"details"`
	CreatedAt  time.Time     `gorm:"index" json:"created_at"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
