package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/internal/inventory"
	"github.com/angelmondragon/stockledger-backend/pkg/db"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
	"github.com/angelmondragon/stockledger-backend/pkg/logger"
	"github.com/angelmondragon/stockledger-backend/pkg/metrics"
)

const (
	msgSaleNotFound      = "Sale not found"
	msgItemNotFound      = "Item not found in inventory"
	msgInsufficientStock = "Insufficient inventory quantity"
)

const tracerName = "github.com/angelmondragon/stockledger-backend/internal/sales"

// Service records sales and keeps inventory quantities in step with them.
type Service interface {
	List(ctx context.Context) ([]SaleDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*SaleDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateSaleInput) (*SaleDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSaleInput) (*SaleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams bundles the collaborators of the sales service.
type ServiceParams struct {
	Repo      *Repository
	Inventory *inventory.Repository
	DB        *db.Client
	Metrics   *metrics.StockMetrics
	Logger    *logger.Logger

	// Tracing defaults to the global otel provider.
	Tracing trace.TracerProvider
}

type service struct {
	repo      *Repository
	inventory *inventory.Repository
	db        *db.Client
	metrics   *metrics.StockMetrics
	logg      *logger.Logger
	tracer    trace.Tracer
}

func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if p.Inventory == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if p.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	tp := p.Tracing
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &service{
		repo:      p.Repo,
		inventory: p.Inventory,
		db:        p.DB,
		metrics:   p.Metrics,
		logg:      p.Logger,
		tracer:    tp.Tracer(tracerName),
	}, nil
}

func (s *service) List(ctx context.Context) ([]SaleDTO, error) {
	rows, err := s.repo.ListRecent(ctx, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sales")
	}
	out := make([]SaleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*SaleDTO, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, saleLookupError(err)
	}
	return FromModel(sale), nil
}

// Create takes stock for the sale and records it in one transaction.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateSaleInput) (*SaleDTO, error) {
	ctx, span := s.tracer.Start(ctx, "sales.Create", trace.WithAttributes(
		attribute.String("sale.item", input.Item),
		attribute.Int("sale.quantity", input.Quantity),
	))
	defer span.End()

	sale := input.toModel(userID)
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := allocate(ctx, s.inventory.WithTx(tx), sale.Item, sale.Quantity); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert sale")
		}
		return nil
	})
	err = ensureTyped(err, "create sale")
	s.observe(ctx, span, metrics.StockOpCreate, err)
	if err != nil {
		return nil, err
	}
	return FromModel(sale), nil
}

// Update rewrites the sale. When the item or quantity changes, the previous
// allocation goes back to the previous item before the new one is taken; a
// failed allocation rolls both back.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateSaleInput) (*SaleDTO, error) {
	ctx, span := s.tracer.Start(ctx, "sales.Update", trace.WithAttributes(attribute.String("sale.id", id.String())))
	defer span.End()

	var updated models.Sale
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		salesRepo := s.repo.WithTx(tx)
		stock := s.inventory.WithTx(tx)

		original, err := salesRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return saleLookupError(err)
		}

		next := input.apply(*original)
		if next.Item != original.Item || next.Quantity != original.Quantity {
			if _, err := stock.Restore(ctx, original.Item, original.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restore inventory")
			}
			if err := allocate(ctx, stock, next.Item, next.Quantity); err != nil {
				return err
			}
		}

		if err := salesRepo.Overwrite(ctx, &next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update sale")
		}
		updated = next
		return nil
	})
	err = ensureTyped(err, "update sale")
	s.observe(ctx, span, metrics.StockOpUpdate, err)
	if err != nil {
		return nil, err
	}
	return FromModel(&updated), nil
}

// Delete returns the sale's quantity to its item, then removes the sale. An
// item that no longer exists is skipped.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "sales.Delete", trace.WithAttributes(attribute.String("sale.id", id.String())))
	defer span.End()

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		salesRepo := s.repo.WithTx(tx)

		sale, err := salesRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return saleLookupError(err)
		}

		restored, err := s.inventory.WithTx(tx).Restore(ctx, sale.Item, sale.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restore inventory")
		}
		if restored == 0 && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "item", sale.Item), "sale.restore_skipped_missing_item")
		}

		deleted, err := salesRepo.Delete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete sale")
		}
		if deleted == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, msgSaleNotFound)
		}
		return nil
	})
	err = ensureTyped(err, "delete sale")
	s.observe(ctx, span, metrics.StockOpDelete, err)
	return err
}

// allocate takes qty units of the named item, or explains why it could not.
func allocate(ctx context.Context, stock *inventory.Repository, item string, qty int) error {
	ok, err := stock.DecrementIfAvailable(ctx, item, qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement inventory")
	}
	if ok {
		return nil
	}

	current, err := stock.FindByName(ctx, item)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, msgItemNotFound)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, msgInsufficientStock).WithDetails(map[string]any{
		"item":      item,
		"requested": qty,
		"available": current.Quantity,
	})
}

func saleLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgSaleNotFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load sale")
}

// ensureTyped wraps transaction-level failures such as a failed commit.
func ensureTyped(err error, msg string) error {
	if err == nil || pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}

func (s *service) observe(ctx context.Context, span trace.Span, op string, err error) {
	outcome := metrics.OutcomeApplied
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		switch pkgerrors.As(err).Code() {
		case pkgerrors.CodeInsufficientStock:
			outcome = metrics.OutcomeInsufficient
		case pkgerrors.CodeNotFound:
			outcome = metrics.OutcomeNotFound
		default:
			outcome = metrics.OutcomeError
		}
	}
	span.SetAttributes(attribute.String("stock.outcome", outcome))
	s.metrics.Record(op, outcome)

	if s.logg != nil && outcome == metrics.OutcomeApplied {
		s.logg.Info(s.logg.WithField(ctx, "operation", op), "sale.stock_adjusted")
	}
}
