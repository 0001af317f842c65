package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
)

// CustomerTotal is one row of the per-customer sales rollup.
type CustomerTotal struct {
	Customer       string          `gorm:"column:customer" json:"customer"`
	TotalPurchases int64           `gorm:"column:total_purchases" json:"totalPurchases"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount" json:"totalAmount"`
}

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// ListRecent returns sales newest first. A non-positive limit returns every sale.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Sale, error) {
	var rows []models.Sale
	q := r.DB(ctx).Order("date DESC").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := r.DB(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindByIDForUpdate loads the sale and holds its row lock until the transaction ends.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := r.DB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.DB(ctx).Create(sale).Error
}

// Overwrite replaces the editable columns of an existing sale.
func (r *Repository) Overwrite(ctx context.Context, sale *models.Sale) error {
	sale.UpdatedAt = time.Now().UTC()
	return r.DB(ctx).Model(&models.Sale{}).Where("id = ?", sale.ID).Updates(map[string]any{
		"date":       sale.Date,
		"item":       sale.Item,
		"quantity":   sale.Quantity,
		"customer":   sale.Customer,
		"total":      sale.Total,
		"updated_at": sale.UpdatedAt,
	}).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Sale{})
	return res.RowsAffected, res.Error
}

// SummarizeByCustomer groups sales by customer name. Group order is unspecified;
// a non-positive limit returns every group.
func (r *Repository) SummarizeByCustomer(ctx context.Context, limit int) ([]CustomerTotal, error) {
	var rows []CustomerTotal
	q := r.DB(ctx).
		Model(&models.Sale{}).
		Select("customer, COUNT(*) AS total_purchases, COALESCE(SUM(total), 0) AS total_amount").
		Group("customer")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SumTotals returns the revenue across every sale.
func (r *Repository) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB(ctx).Model(&models.Sale{}).Select("COALESCE(SUM(total), 0)").Row().Scan(&total)
	return total, err
}
