package basket

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/skyshop/internal/domain/product"
)

// ErrInconsistent is returned when the basket references a product the
// catalog can no longer resolve. Entries are validated on insertion, so this
// indicates a programming error rather than a client mistake.
var ErrInconsistent = errors.New("basket references unknown product")

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// Is makes ProductNotFoundError match product.ErrNotFound.
func (e *ProductNotFoundError) Is(target error) bool {
	return target == product.ErrNotFound
}

// ProductLookup resolves product identifiers.
type ProductLookup interface {
	LookupProduct(id uuid.UUID) (product.Product, bool)
}

// LineItem is a resolved product with its quantity.
type LineItem struct {
	Product  product.Product
	Quantity int
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Summary is the materialised basket.
type Summary struct {
	Items []LineItem
	Total decimal.Decimal
}

// Service records basket additions and materialises the basket against the
// catalog.
type Service struct {
	products ProductLookup
	basket   *Basket
}

// NewService creates a basket Service backed by the given catalog and basket.
func NewService(products ProductLookup, basket *Basket) *Service {
	return &Service{
		products: products,
		basket:   basket,
	}
}

// AddUnit adds one unit of the product to the basket. Unknown identifiers
// yield *ProductNotFoundError and leave the basket untouched.
func (s *Service) AddUnit(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.products.LookupProduct(id); !ok {
		return &ProductNotFoundError{ProductID: id.String()}
	}

	qty := s.basket.Add(id)
	zctx.From(ctx).Debug("Added to basket",
		zap.Stringer("product_id", id),
		zap.Int("quantity", qty),
	)
	return nil
}

// Current resolves every basket entry and computes the total from the
// current product prices.
func (s *Service) Current(ctx context.Context) (*Summary, error) {
	entries := s.basket.Entries()

	items := make([]LineItem, 0, len(entries))
	total := decimal.Zero
	for _, e := range entries {
		p, ok := s.products.LookupProduct(e.ProductID)
		if !ok {
			zctx.From(ctx).Error("Basket entry cannot be resolved",
				zap.Stringer("product_id", e.ProductID),
			)
			return nil, errors.Wrapf(ErrInconsistent, "product %s", e.ProductID)
		}

		li := LineItem{Product: p, Quantity: e.Quantity}
		items = append(items, li)
		total = total.Add(li.Subtotal())
	}

	return &Summary{
		Items: items,
		Total: total,
	}, nil
}
