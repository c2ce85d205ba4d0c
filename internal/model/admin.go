package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminAccount is a console operator. Storefront users live in the document store.
type AdminAccount struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	DisplayName string         `gorm:"type:varchar(255)" json:"display_name"`
	Password    string         `gorm:"type:varchar(255);not null" json:"-"`
	Role        string         `gorm:"type:varchar(50);not null" json:"role"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *AdminAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// RefreshToken is a long-lived token exchanged for new access tokens. Each use rotates it.
type RefreshToken struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"admin_id"`
	Admin     AdminAccount `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time    `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
