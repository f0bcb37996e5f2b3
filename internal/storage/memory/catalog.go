// Package memory implements the catalog store on process memory.
package memory

import (
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/xenking/skyshop/internal/domain/article"
	"github.com/xenking/skyshop/internal/domain/catalog"
	"github.com/xenking/skyshop/internal/domain/product"
)

// ErrDuplicateID is returned when an entity is added under an identifier that
// is already stored.
var ErrDuplicateID = errors.New("duplicate identifier")

var (
	_ product.Repository = (*Catalog)(nil)
	_ article.Repository = (*Catalog)(nil)
)

// Catalog holds products and articles keyed by identifier. Entries are added
// once while seeding and never updated or removed.
type Catalog struct {
	mu sync.RWMutex

	products     map[uuid.UUID]product.Product
	productOrder []uuid.UUID
	articles     map[uuid.UUID]*article.Article
	articleOrder []uuid.UUID
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		products: make(map[uuid.UUID]product.Product),
		articles: make(map[uuid.UUID]*article.Article),
	}
}

// AddProduct stores p.
func (c *Catalog) AddProduct(p product.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.products[p.ID()]; ok {
		return errors.Wrapf(ErrDuplicateID, "product %s", p.ID())
	}
	c.products[p.ID()] = p
	c.productOrder = append(c.productOrder, p.ID())
	return nil
}

// AddArticle stores a.
func (c *Catalog) AddArticle(a *article.Article) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.articles[a.ID()]; ok {
		return errors.Wrapf(ErrDuplicateID, "article %s", a.ID())
	}
	c.articles[a.ID()] = a
	c.articleOrder = append(c.articleOrder, a.ID())
	return nil
}

// LookupProduct returns the product stored under id. Unknown and nil
// identifiers report false.
func (c *Catalog) LookupProduct(id uuid.UUID) (product.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[id]
	return p, ok
}

// LookupArticle returns the article stored under id.
func (c *Catalog) LookupArticle(id uuid.UUID) (*article.Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.articles[id]
	return a, ok
}

// Products returns every product in insertion order.
func (c *Catalog) Products() []product.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]product.Product, len(c.productOrder))
	for i, id := range c.productOrder {
		out[i] = c.products[id]
	}
	return out
}

// Articles returns every article in insertion order.
func (c *Catalog) Articles() []*article.Article {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*article.Article, len(c.articleOrder))
	for i, id := range c.articleOrder {
		out[i] = c.articles[id]
	}
	return out
}

// AllSearchable returns a snapshot of every product followed by every
// article.
func (c *Catalog) AllSearchable() []catalog.Searchable {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]catalog.Searchable, 0, len(c.productOrder)+len(c.articleOrder))
	for _, id := range c.productOrder {
		out = append(out, c.products[id])
	}
	for _, id := range c.articleOrder {
		out = append(out, c.articles[id])
	}
	return out
}

// Len returns the number of stored products and articles.
func (c *Catalog) Len() (products, articles int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.productOrder), len(c.articleOrder)
}
