package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/skyshop/internal/domain/article"
	"github.com/xenking/skyshop/internal/domain/basket"
	"github.com/xenking/skyshop/internal/domain/product"
	"github.com/xenking/skyshop/internal/domain/search"
)

func writeJSON(w http.ResponseWriter, status int, body func(e *jx.Encoder)) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	body(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func encodeDecimal(e *jx.Encoder, d decimal.Decimal) {
	e.Num(jx.Num(d.String()))
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID().String()) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name()) })
		e.Field("kind", func(e *jx.Encoder) { e.Str(string(p.Kind())) })
		e.Field("price", func(e *jx.Encoder) { encodeDecimal(e, p.Price()) })
		if d, ok := p.(*product.Discounted); ok {
			e.Field("basePrice", func(e *jx.Encoder) { encodeDecimal(e, d.BasePrice()) })
			e.Field("discount", func(e *jx.Encoder) { e.Int(d.Discount()) })
		}
		e.Field("special", func(e *jx.Encoder) { e.Bool(p.IsSpecial()) })
		e.Field("contentType", func(e *jx.Encoder) { e.Str(string(p.ContentType())) })
	})
}

func encodeArticle(e *jx.Encoder, a *article.Article) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(a.ID().String()) })
		e.Field("title", func(e *jx.Encoder) { e.Str(a.Title()) })
		e.Field("text", func(e *jx.Encoder) { e.Str(a.Text()) })
		e.Field("contentType", func(e *jx.Encoder) { e.Str(string(a.ContentType())) })
	})
}

func encodeSearchResult(e *jx.Encoder, r search.Result) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(r.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(r.Name) })
		e.Field("contentType", func(e *jx.Encoder) { e.Str(string(r.ContentType)) })
		e.Field("representation", func(e *jx.Encoder) { e.Str(r.Representation) })
	})
}

func encodeSummary(e *jx.Encoder, s *basket.Summary) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, li := range s.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("product", func(e *jx.Encoder) { encodeProduct(e, li.Product) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(li.Quantity) })
						e.Field("subtotal", func(e *jx.Encoder) { encodeDecimal(e, li.Subtotal()) })
					})
				}
			})
		})
		e.Field("total", func(e *jx.Encoder) { encodeDecimal(e, s.Total) })
	})
}
