package handler

import (
	"net/http"

	"github.com/go-faster/jx"
)

const addedMessage = "Продукт успешно добавлен"

// AddToBasket adds one unit of the product named in the path.
func (h *Handler) AddToBasket(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.basket.AddUnit(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.basketAdds.Add(r.Context(), 1)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("productId", func(e *jx.Encoder) { e.Str(id.String()) })
			e.Field("message", func(e *jx.Encoder) { e.Str(addedMessage) })
		})
	})
}

// GetBasket returns the current basket with line items and total.
func (h *Handler) GetBasket(w http.ResponseWriter, r *http.Request) {
	summary, err := h.basket.Current(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeSummary(e, summary) })
}
