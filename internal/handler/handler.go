// Package handler exposes the catalog, search and basket over HTTP.
package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/skyshop/internal/domain/article"
	"github.com/xenking/skyshop/internal/domain/basket"
	"github.com/xenking/skyshop/internal/domain/product"
	"github.com/xenking/skyshop/internal/domain/search"
)

// Catalog is the read side of the catalog store used by the handlers.
type Catalog interface {
	product.Repository
	article.Repository
}

// Handler serves the /api routes.
type Handler struct {
	catalog Catalog
	search  *search.Service
	basket  *basket.Service

	searches   metric.Int64Counter
	basketAdds metric.Int64Counter
	notFound   metric.Int64Counter
}

// New creates a Handler. Counters are registered on meter.
func New(catalog Catalog, searchSvc *search.Service, basketSvc *basket.Service, meter metric.Meter) (*Handler, error) {
	h := &Handler{
		catalog: catalog,
		search:  searchSvc,
		basket:  basketSvc,
	}

	var err error
	if h.searches, err = meter.Int64Counter("skyshop.search.queries",
		metric.WithDescription("Search queries served"),
	); err != nil {
		return nil, errors.Wrap(err, "search counter")
	}
	if h.basketAdds, err = meter.Int64Counter("skyshop.basket.units_added",
		metric.WithDescription("Product units added to the basket"),
	); err != nil {
		return nil, errors.Wrap(err, "basket counter")
	}
	if h.notFound, err = meter.Int64Counter("skyshop.product.not_found",
		metric.WithDescription("Requests referencing unknown products"),
	); err != nil {
		return nil, errors.Wrap(err, "not found counter")
	}
	return h, nil
}

// Register mounts the API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /api/articles", h.ListArticles)
	mux.HandleFunc("GET /api/search", h.Search)
	mux.HandleFunc("POST /api/basket/{id}", h.AddToBasket)
	mux.HandleFunc("GET /api/basket", h.GetBasket)

	// Paths served by earlier storefront clients. Adding to the basket is a
	// GET there.
	mux.HandleFunc("GET /products", h.ListProducts)
	mux.HandleFunc("GET /articles", h.ListArticles)
	mux.HandleFunc("GET /search", h.Search)
	mux.HandleFunc("GET /shop/basket/{id}", h.AddToBasket)
	mux.HandleFunc("GET /shop/basket", h.GetBasket)
}

// parseID parses a path identifier. Malformed identifiers cannot name any
// product, so they are reported as not found.
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &basket.ProductNotFoundError{ProductID: raw}
	}
	return id, nil
}
