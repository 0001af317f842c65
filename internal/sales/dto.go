package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
)

type SaleDTO struct {
	ID        uuid.UUID       `json:"id"`
	Date      time.Time       `json:"date"`
	Item      string          `json:"item"`
	Quantity  int             `json:"quantity"`
	Customer  string          `json:"customer"`
	Total     decimal.Decimal `json:"total"`
	UserID    uuid.UUID       `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateSaleInput describes a sale of Quantity units of the inventory item named Item.
type CreateSaleInput struct {
	Date     time.Time
	Item     string
	Quantity int
	Customer string
	Total    decimal.Decimal
}

// UpdateSaleInput holds optional replacements; nil fields keep the recorded value.
type UpdateSaleInput struct {
	Date     *time.Time
	Item     *string
	Quantity *int
	Customer *string
	Total    *decimal.Decimal
}

func FromModel(m *models.Sale) *SaleDTO {
	if m == nil {
		return nil
	}
	return &SaleDTO{
		ID:        m.ID,
		Date:      m.Date,
		Item:      m.Item,
		Quantity:  m.Quantity,
		Customer:  m.Customer,
		Total:     m.Total,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (in CreateSaleInput) toModel(userID uuid.UUID) *models.Sale {
	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &models.Sale{
		Date:     date,
		Item:     in.Item,
		Quantity: in.Quantity,
		Customer: in.Customer,
		Total:    in.Total,
		UserID:   userID,
	}
}

// apply returns a copy of sale with the supplied fields replaced.
func (in UpdateSaleInput) apply(sale models.Sale) models.Sale {
	if in.Date != nil {
		sale.Date = *in.Date
	}
	if in.Item != nil {
		sale.Item = *in.Item
	}
	if in.Quantity != nil {
		sale.Quantity = *in.Quantity
	}
	if in.Customer != nil {
		sale.Customer = *in.Customer
	}
	if in.Total != nil {
		sale.Total = *in.Total
	}
	return sale
}
