package checkout

import (
	"context"
	"fmt"
	"time"

	"klontong/domain"
	"klontong/pkg/logger"
	"klontong/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Checkout audit rows carry this entity name; the entity id is the order id.
const entityName = "checkout"

// ProductFinder resolves non-deleted products by id.
type ProductFinder interface {
	FindActiveByID(ctx context.Context, id uint64) (domain.Product, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, entity, entityID string, action domain.AuditAction, before, after interface{}) (*domain.AuditLog, error)
}

type checkoutService struct {
	productRepo ProductFinder
	audit       AuditRecorder
}

func NewCheckoutService(productRepo ProductFinder, audit AuditRecorder) *checkoutService {
	return &checkoutService{
		productRepo: productRepo,
		audit:       audit,
	}
}

// Process validates the cart, resolves every line against the catalog,
// computes subtotals and the grand total, and records one CREATE audit row
// keyed by a generated order id. Line resolution runs concurrently but the
// result keeps the input order. The first failing line aborts the whole
// checkout; nothing is audited on failure. Duplicate product ids stay
// independent lines.
func (s *checkoutService) Process(ctx context.Context, items []domain.CheckoutItem) (*domain.CheckoutResult, error) {
	start := time.Now()

	if len(items) == 0 {
		metrics.CheckoutFailed.Inc()
		return nil, domain.ErrCartEmpty
	}

	lines := make([]domain.CheckoutLine, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if item.Quantity < 1 {
				return fmt.Errorf("%w: product %d has quantity %d", domain.ErrInvalidQuantity, item.ProductID, item.Quantity)
			}

			product, err := s.productRepo.FindActiveByID(gctx, item.ProductID)
			if err != nil {
				return err
			}

			lines[i] = domain.CheckoutLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Subtotal:  product.Harga.Mul(decimal.NewFromInt(int64(item.Quantity))),
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.CheckoutFailed.Inc()
		return nil, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}

	orderID := uuid.NewString()

	after := map[string]interface{}{
		"items": lines,
		"total": total,
	}

	if _, err := s.audit.Record(ctx, entityName, orderID, domain.ActionCreate, nil, after); err != nil {
		metrics.CheckoutFailed.Inc()
		return nil, err
	}

	metrics.CheckoutProcessed.Inc()
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())

	logger.Info("checkout processed", "order_id", orderID, "lines", len(lines), "total", total.String())

	return &domain.CheckoutResult{
		Items:     lines,
		Total:     total,
		OrderID:   orderID,
		CreatedAt: time.Now(),
	}, nil
}
