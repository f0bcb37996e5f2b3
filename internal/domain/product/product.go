package product

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/skyshop/internal/domain/catalog"
)

var (
	_ Product = (*Simple)(nil)
	_ Product = (*Fixed)(nil)
	_ Product = (*Discounted)(nil)
)

// FixedPrice is the price of every fixed-price product.
const FixedPrice = 30

var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidPrice is returned when a product price is not positive.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidDiscount is returned when a discount is outside [0, 100].
	ErrInvalidDiscount = errors.New("invalid discount")
)

// Kind enumerates the pricing strategies.
type Kind string

const (
	// KindSimple is priced by an explicit positive price.
	KindSimple Kind = "simple"
	// KindFixed always costs FixedPrice.
	KindFixed Kind = "fixed"
	// KindDiscounted is a base price reduced by a discount.
	KindDiscounted Kind = "discounted"
)

// Product is a sellable catalog item.
type Product interface {
	catalog.Searchable
	fmt.Stringer

	Name() string
	Kind() Kind
	// Price returns the effective unit price.
	Price() decimal.Decimal
	// IsSpecial reports whether the product is a promotional offering.
	IsSpecial() bool
}

// Equal reports whether a and b are the same product. Products are compared
// by name only: identifier and price are ignored.
func Equal(a, b Product) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name()
}

// base carries the fields shared by every variant.
type base struct {
	id   uuid.UUID
	name string
}

func newBase(name string) (base, error) {
	if err := catalog.ValidateName(name); err != nil {
		return base{}, err
	}
	return base{id: catalog.NewID(), name: name}, nil
}

func (b base) ID() uuid.UUID                    { return b.id }
func (b base) Name() string                     { return b.name }
func (b base) SearchTerm() string               { return b.name }
func (b base) DisplayName() string              { return b.name }
func (b base) ContentType() catalog.ContentType { return catalog.ContentProduct }

// Simple is a product with an explicit price.
type Simple struct {
	base
	price int64
}

// NewSimple creates a Simple product. The price must be positive.
func NewSimple(name string, price int64) (*Simple, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, errors.Wrapf(ErrInvalidPrice, "price %d", price)
	}
	return &Simple{base: b, price: price}, nil
}

func (p *Simple) Kind() Kind             { return KindSimple }
func (p *Simple) Price() decimal.Decimal { return decimal.NewFromInt(p.price) }
func (p *Simple) IsSpecial() bool        { return false }

func (p *Simple) String() string {
	return fmt.Sprintf("%s: %d", p.name, p.price)
}

// Fixed is a promotional product sold at FixedPrice.
type Fixed struct {
	base
}

// NewFixed creates a Fixed product.
func NewFixed(name string) (*Fixed, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	return &Fixed{base: b}, nil
}

func (p *Fixed) Kind() Kind             { return KindFixed }
func (p *Fixed) Price() decimal.Decimal { return decimal.NewFromInt(FixedPrice) }
func (p *Fixed) IsSpecial() bool        { return true }

func (p *Fixed) String() string {
	return fmt.Sprintf("%s: Фиксированная цена %d", p.name, FixedPrice)
}

// Discounted is a promotional product with a base price and a discount in
// whole percentage points.
type Discounted struct {
	base
	price    int64
	discount int
}

// NewDiscounted creates a Discounted product. The base price must be positive
// and the discount must lie in [0, 100].
func NewDiscounted(name string, price int64, discount int) (*Discounted, error) {
	b, err := newBase(name)
	if err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, errors.Wrapf(ErrInvalidPrice, "price %d", price)
	}
	if discount < 0 || discount > 100 {
		return nil, errors.Wrapf(ErrInvalidDiscount, "discount %d", discount)
	}
	return &Discounted{base: b, price: price, discount: discount}, nil
}

func (p *Discounted) Kind() Kind      { return KindDiscounted }
func (p *Discounted) IsSpecial() bool { return true }

// BasePrice returns the price before the discount.
func (p *Discounted) BasePrice() decimal.Decimal { return decimal.NewFromInt(p.price) }

// Discount returns the discount in whole percentage points.
func (p *Discounted) Discount() int { return p.discount }

// Price subtracts the discount points from the base price as a raw amount,
// so 50 with a 10 point discount costs 40.
func (p *Discounted) Price() decimal.Decimal {
	return decimal.NewFromInt(p.price - int64(p.discount))
}

func (p *Discounted) String() string {
	return fmt.Sprintf("%s: %s ( %d%% )", p.name, p.Price(), p.discount)
}

// Repository defines read operations for the product catalog.
type Repository interface {
	Products() []Product
	LookupProduct(id uuid.UUID) (Product, bool)
}
