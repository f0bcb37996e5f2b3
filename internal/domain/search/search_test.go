package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/skyshop/internal/domain/article"
	"github.com/xenking/skyshop/internal/domain/catalog"
	"github.com/xenking/skyshop/internal/domain/product"
)

type staticSource []catalog.Searchable

func (s staticSource) AllSearchable() []catalog.Searchable { return s }

func mustProduct(t *testing.T, name string, price int64) *product.Simple {
	t.Helper()
	p, err := product.NewSimple(name, price)
	require.NoError(t, err)
	return p
}

func mustArticle(t *testing.T, title, text string) *article.Article {
	t.Helper()
	a, err := article.New(title, text)
	require.NoError(t, err)
	return a
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestSearch(t *testing.T) {
	breadWhite := mustProduct(t, "Хлеб Белый", 50)
	milk := mustProduct(t, "Молоко", 80)
	breadRye := mustProduct(t, "Хлеб Ржаной", 60)
	freshBread := mustArticle(t, "Свежий Хлеб", "Статья о свежем хлебе")
	dairy := mustArticle(t, "Молочные Продукты", "Статья о молочных продуктах")
	homeBread := mustArticle(t, "Хлеб Домашний", "Рецепт домашнего хлеба")

	src := staticSource{breadWhite, milk, breadRye, freshBread, dairy, homeBread}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "no matches",
			query: "Рыба",
			want:  []string{},
		},
		{
			name:  "empty query matches everything",
			query: "",
			want:  []string{"Хлеб Белый", "Молоко", "Хлеб Ржаной", "Свежий Хлеб", "Молочные Продукты", "Хлеб Домашний"},
		},
		{
			name:  "matches products and articles in source order",
			query: "Хлеб",
			want:  []string{"Хлеб Белый", "Хлеб Ржаной", "Свежий Хлеб", "Хлеб Домашний"},
		},
		{
			name:  "lowercase does not match",
			query: "хлеб",
			want:  []string{},
		},
		{
			name:  "uppercase does not match",
			query: "ХЛЕБ",
			want:  []string{},
		},
		{
			name:  "whitespace is significant",
			query: " Хлеб",
			want:  []string{"Свежий Хлеб"},
		},
		{
			name:  "substring in the middle",
			query: "Молок",
			want:  []string{"Молоко"},
		},
	}

	svc := NewService(src)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Search(context.Background(), tt.query)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSearch_SubstringExcludesNonContaining(t *testing.T) {
	milk := mustProduct(t, "Молоко Пастеризованное", 90)
	yogurt := mustProduct(t, "Йогурт Молочный", 70)

	got := NewService(staticSource{milk, yogurt}).Search(context.Background(), "Молок")
	require.Len(t, got, 1)
	assert.Equal(t, milk.ID().String(), got[0].ID)
}

func TestSearch_ResultProjection(t *testing.T) {
	p := mustProduct(t, "Хлеб Белый", 50)
	a := mustArticle(t, "Хлеб Белый", "О белом хлебе")

	got := NewService(staticSource{p, a}).Search(context.Background(), "Белый")
	require.Len(t, got, 2, "identically named product and article are both returned")

	assert.Equal(t, Result{
		ID:             p.ID().String(),
		ContentType:    catalog.ContentProduct,
		Name:           "Хлеб Белый",
		Representation: `"имя Хлеб Белый -объекта - тип PRODUCT -объекта"`,
	}, got[0])
	assert.Equal(t, a.ID().String(), got[1].ID)
	assert.Equal(t, catalog.ContentArticle, got[1].ContentType)
}

func TestSearch_EmptySource(t *testing.T) {
	got := NewService(staticSource{}).Search(context.Background(), "Хлеб")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearch_Idempotent(t *testing.T) {
	svc := NewService(staticSource{
		mustProduct(t, "Апельсин", 130),
		mustArticle(t, "Первый", "Первый он и есть первый"),
	})

	first := svc.Search(context.Background(), "")
	second := svc.Search(context.Background(), "")
	assert.Equal(t, first, second)
}
