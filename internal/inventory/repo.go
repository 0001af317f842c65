package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
)

// Repository persists inventory items and applies stock movements.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// List returns every item, optionally filtered by a name/description search.
func (r *Repository) List(ctx context.Context, query string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	q := r.DB(ctx).Model(&models.InventoryItem{})
	if query != "" {
		pattern := repo.SearchPattern(query)
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if err := q.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll returns items in storage order; a non-positive limit returns all of them.
func (r *Repository) ListAll(ctx context.Context, limit int) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	q := r.DB(ctx)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.DB(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) FindByName(ctx context.Context, name string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.DB(ctx).First(&item, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.DB(ctx).Create(item).Error
}

// Update applies the column map and reports how many rows matched.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	updates["updated_at"] = time.Now().UTC()
	res := r.DB(ctx).Model(&models.InventoryItem{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.InventoryItem{})
	return res.RowsAffected, res.Error
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.InventoryItem{}).Count(&count).Error
	return count, err
}

// DecrementIfAvailable removes qty units from the named item only when at least
// qty are on hand. It reports false when no row satisfied the guard.
func (r *Repository) DecrementIfAvailable(ctx context.Context, name string, qty int) (bool, error) {
	res := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("name = ? AND quantity >= ?", name, qty).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Restore adds qty units back to the named item. A missing item matches zero
// rows and is not an error.
func (r *Repository) Restore(ctx context.Context, name string, qty int) (int64, error) {
	res := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("name = ?", name).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", qty),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
