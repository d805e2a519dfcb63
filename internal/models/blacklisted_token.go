package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlacklistedToken is a revoked session token. Logout records the token's
// JTI here; the auth middleware rejects any listed token until it expires.
// CustomerID is nil when the token failed validation and the owner could
// not be established.
type BlacklistedToken struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	JTI           string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"jti"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	ExpiresAt     time.Time  `gorm:"not null;index" json:"expires_at"`
	BlacklistedAt time.Time  `gorm:"not null" json:"blacklisted_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (bt *BlacklistedToken) IsExpired() bool {
	return time.Now().After(bt.ExpiresAt)
}

func (bt *BlacklistedToken) TableName() string {
	return "blacklisted_tokens"
}

func (bt *BlacklistedToken) BeforeCreate(tx *gorm.DB) error {
	if bt.ID == uuid.Nil {
		bt.ID = uuid.New()
	}

	if bt.BlacklistedAt.IsZero() {
		bt.BlacklistedAt = time.Now()
	}
	return nil
}
