package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/skyshop/internal/domain/basket"
	"github.com/xenking/skyshop/internal/domain/catalog"
	"github.com/xenking/skyshop/internal/domain/product"
)

const (
	codeProductNotFound = "PRODUCT_NOT_FOUND"
	codeInvalidArgument = "INVALID_ARGUMENT"
	codeInternal        = "INTERNAL"
)

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(status) })
			e.Field("error", func(e *jx.Encoder) { e.Str(code) })
			e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
		})
	})
}

// fail maps domain errors to responses.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var pnfErr *basket.ProductNotFoundError
	switch {
	case errors.As(err, &pnfErr):
		h.notFound.Add(r.Context(), 1)
		writeError(w, http.StatusNotFound, codeProductNotFound, pnfErr.Error())
	case errors.Is(err, product.ErrNotFound):
		h.notFound.Add(r.Context(), 1)
		writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
	case errors.Is(err, catalog.ErrInvalidName),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidDiscount):
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
	default:
		zctx.From(r.Context()).Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
