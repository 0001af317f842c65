package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
)

// ItemDTO is the transport shape of an inventory item.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	UserID      uuid.UUID       `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateItemInput holds the validated payload to stock a new item.
type CreateItemInput struct {
	Name        string
	Description string
	Quantity    int
	Price       decimal.Decimal
}

// UpdateItemInput holds optional replacements; nil fields are left untouched.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Quantity    *int
	Price       *decimal.Decimal
}

func FromModel(m *models.InventoryItem) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Quantity:    m.Quantity,
		Price:       m.Price,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (in CreateItemInput) toModel(userID uuid.UUID) *models.InventoryItem {
	return &models.InventoryItem{
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
		UserID:      userID,
	}
}

func (in UpdateItemInput) columns() map[string]any {
	cols := map[string]any{}
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.Description != nil {
		cols["description"] = *in.Description
	}
	if in.Quantity != nil {
		cols["quantity"] = *in.Quantity
	}
	if in.Price != nil {
		cols["price"] = *in.Price
	}
	return cols
}
