package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stockledger-backend/api/responses"
	"github.com/angelmondragon/stockledger-backend/api/validators"
	"github.com/angelmondragon/stockledger-backend/internal/sales"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
	"github.com/angelmondragon/stockledger-backend/pkg/logger"
)

// saleDateLayouts are tried in order; a bare calendar date is the common case.
var saleDateLayouts = []string{"2006-01-02", time.RFC3339}

type CreateSaleRequest struct {
	Date     string           `json:"date" validate:"required"`
	Item     string           `json:"item" validate:"required,max=200"`
	Quantity int              `json:"quantity" validate:"required,gt=0"`
	Customer string           `json:"customer" validate:"required,max=200"`
	Total    *decimal.Decimal `json:"total" validate:"required,money"`
}

type UpdateSaleRequest struct {
	Date     *string          `json:"date" validate:"omitempty,min=1"`
	Item     *string          `json:"item" validate:"omitempty,min=1,max=200"`
	Quantity *int             `json:"quantity" validate:"omitempty,gt=0"`
	Customer *string          `json:"customer" validate:"omitempty,min=1,max=200"`
	Total    *decimal.Decimal `json:"total" validate:"omitempty,money"`
}

func parseSaleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid date").
		WithDetails(map[string]any{"field": "date", "value": raw})
}

func ListSales(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sale, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

// CreateSale records a sale and decrements the referenced item's stock.
func CreateSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body CreateSaleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := parseSaleDate(body.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.Create(r.Context(), userID, sales.CreateSaleInput{
			Date:     date,
			Item:     validators.SanitizeString(body.Item, 200),
			Quantity: body.Quantity,
			Customer: validators.SanitizeString(body.Customer, 200),
			Total:    *body.Total,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

func UpdateSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body UpdateSaleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := sales.UpdateSaleInput{
			Item:     trimmed(body.Item, 200),
			Quantity: body.Quantity,
			Customer: trimmed(body.Customer, 200),
			Total:    body.Total,
		}
		if body.Date != nil {
			date, err := parseSaleDate(*body.Date)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Date = &date
		}

		sale, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

// DeleteSale removes the sale and returns its quantity to stock.
func DeleteSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, messageResponse{Message: "Sale deleted successfully"})
	}
}
