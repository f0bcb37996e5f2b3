// Package seed loads the initial catalog contents and populates the store.
//
// A seed document is a JSON object with a "products" and an "articles" array:
//
//	{
//	  "products": [
//	    {"kind": "simple", "name": "Апельсин", "price": 130},
//	    {"kind": "discounted", "name": "Соль", "price": 50, "discount": 10},
//	    {"kind": "fixed", "name": "Мыло"}
//	  ],
//	  "articles": [
//	    {"title": "Первый", "text": "Первый он и есть первый"}
//	  ]
//	}
package seed

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/skyshop/internal/domain/article"
	"github.com/xenking/skyshop/internal/domain/product"
)

// ErrUnknownKind is returned for product entries with an unrecognised
// pricing kind.
var ErrUnknownKind = errors.New("unknown product kind")

// ProductEntry describes one product to construct.
type ProductEntry struct {
	Kind     product.Kind
	Name     string
	Price    decimal.Decimal
	Discount int
}

// Build constructs the product described by e. Price is ignored for fixed
// products.
func (e ProductEntry) Build() (product.Product, error) {
	switch e.Kind {
	case product.KindFixed:
		return product.NewFixed(e.Name)
	case product.KindSimple, product.KindDiscounted:
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "kind %q", e.Kind)
	}

	if !e.Price.IsInteger() {
		return nil, errors.Wrapf(product.ErrInvalidPrice, "price %s is not integral", e.Price)
	}
	price := e.Price.IntPart()
	if !decimal.NewFromInt(price).Equal(e.Price) {
		return nil, errors.Wrapf(product.ErrInvalidPrice, "price %s is out of range", e.Price)
	}

	if e.Kind == product.KindDiscounted {
		return product.NewDiscounted(e.Name, price, e.Discount)
	}
	return product.NewSimple(e.Name, price)
}

// ArticleEntry describes one article to construct.
type ArticleEntry struct {
	Title string
	Text  string
}

// Build constructs the article described by e.
func (e ArticleEntry) Build() (*article.Article, error) {
	return article.New(e.Title, e.Text)
}

// Set is a decoded seed document.
type Set struct {
	Products []ProductEntry
	Articles []ArticleEntry
}

// Source yields a seed set.
type Source interface {
	Load(ctx context.Context) (*Set, error)
}

// Store receives the constructed entities.
type Store interface {
	AddProduct(p product.Product) error
	AddArticle(a *article.Article) error
}

// Populate constructs every entry of set and adds it to store in document
// order. The first invalid entry aborts seeding.
func Populate(ctx context.Context, set *Set, store Store) error {
	for i, e := range set.Products {
		p, err := e.Build()
		if err != nil {
			return errors.Wrapf(err, "product #%d", i)
		}
		if err := store.AddProduct(p); err != nil {
			return errors.Wrapf(err, "add product #%d", i)
		}
	}
	for i, e := range set.Articles {
		a, err := e.Build()
		if err != nil {
			return errors.Wrapf(err, "article #%d", i)
		}
		if err := store.AddArticle(a); err != nil {
			return errors.Wrapf(err, "add article #%d", i)
		}
	}

	zctx.From(ctx).Info("Catalog seeded",
		zap.Int("products", len(set.Products)),
		zap.Int("articles", len(set.Articles)),
	)
	return nil
}

// Load reads src and populates store with the result.
func Load(ctx context.Context, src Source, store Store) error {
	set, err := src.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load seed")
	}
	return Populate(ctx, set, store)
}
