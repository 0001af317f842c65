package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
)

type CustomerDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Mobile    string    `json:"mobile"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCustomerInput struct {
	Name    string
	Address string
	Mobile  string
}

// UpdateCustomerInput holds optional replacements; nil fields are left untouched.
type UpdateCustomerInput struct {
	Name    *string
	Address *string
	Mobile  *string
}

func FromModel(m *models.Customer) *CustomerDTO {
	if m == nil {
		return nil
	}
	return &CustomerDTO{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		Mobile:    m.Mobile,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (in UpdateCustomerInput) columns() map[string]any {
	cols := map[string]any{}
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.Address != nil {
		cols["address"] = *in.Address
	}
	if in.Mobile != nil {
		cols["mobile"] = *in.Mobile
	}
	return cols
}
