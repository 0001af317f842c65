package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale records units of one inventory item sold to a named customer.
// Item holds the inventory item name, not its id; renaming an item orphans its sales.
type Sale struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date      time.Time       `gorm:"column:date;not null;index"`
	Item      string          `gorm:"column:item;not null;index"`
	Quantity  int             `gorm:"column:quantity;not null;check:quantity > 0"`
	Customer  string          `gorm:"column:customer;not null;index"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Sale) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
