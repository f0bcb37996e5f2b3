package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/skyshop/internal/domain/basket"
)

// ListProducts returns every product in catalog order.
func (h *Handler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	products := h.catalog.Products()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, p := range products {
				encodeProduct(e, p)
			}
		})
	})
}

// GetProduct returns a single product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, err := parseID(raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p, ok := h.catalog.LookupProduct(id)
	if !ok {
		h.fail(w, r, &basket.ProductNotFoundError{ProductID: raw})
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeProduct(e, p) })
}

// ListArticles returns every article in catalog order.
func (h *Handler) ListArticles(w http.ResponseWriter, _ *http.Request) {
	articles := h.catalog.Articles()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, a := range articles {
				encodeArticle(e, a)
			}
		})
	})
}

// Search matches the pattern query parameter against every entity. The
// parameter is required but may be empty.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("pattern") {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, "query parameter pattern is required")
		return
	}

	results := h.search.Search(r.Context(), q.Get("pattern"))
	h.searches.Add(r.Context(), 1, metric.WithAttributes(
		attribute.Bool("skyshop.search.matched", len(results) > 0),
	))

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, res := range results {
				encodeSearchResult(e, res)
			}
		})
	})
}
