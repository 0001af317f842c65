package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is a stocked product. Sales reference it by Name.
type InventoryItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;not null;uniqueIndex"`
	Description string          `gorm:"column:description;not null;default:''"`
	Quantity    int             `gorm:"column:quantity;not null;default:0;check:quantity >= 0"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

func (i *InventoryItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
