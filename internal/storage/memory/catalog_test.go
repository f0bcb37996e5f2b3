package memory

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/skyshop/internal/domain/article"
	"github.com/xenking/skyshop/internal/domain/catalog"
	"github.com/xenking/skyshop/internal/domain/product"
)

func seeded(t *testing.T) (*Catalog, []product.Product, []*article.Article) {
	t.Helper()

	orange, err := product.NewSimple("Апельсин", 130)
	require.NoError(t, err)
	salt, err := product.NewDiscounted("Соль", 50, 10)
	require.NoError(t, err)
	soap, err := product.NewFixed("Мыло")
	require.NoError(t, err)
	first, err := article.New("Первый", "Первый он и есть первый")
	require.NoError(t, err)
	breadHead, err := article.New("ХлебГолова", "Хлеб всему голова")
	require.NoError(t, err)

	c := NewCatalog()
	products := []product.Product{orange, salt, soap}
	articles := []*article.Article{first, breadHead}
	for _, p := range products {
		require.NoError(t, c.AddProduct(p))
	}
	for _, a := range articles {
		require.NoError(t, c.AddArticle(a))
	}
	return c, products, articles
}

func TestCatalog_LookupProduct(t *testing.T) {
	c, products, articles := seeded(t)

	got, ok := c.LookupProduct(products[1].ID())
	require.True(t, ok)
	assert.Same(t, products[1], got)

	_, ok = c.LookupProduct(uuid.New())
	assert.False(t, ok, "unknown id")

	_, ok = c.LookupProduct(uuid.Nil)
	assert.False(t, ok, "nil id")

	_, ok = c.LookupProduct(articles[0].ID())
	assert.False(t, ok, "article ids are not products")
}

func TestCatalog_LookupArticle(t *testing.T) {
	c, _, articles := seeded(t)

	got, ok := c.LookupArticle(articles[0].ID())
	require.True(t, ok)
	assert.Same(t, articles[0], got)

	_, ok = c.LookupArticle(uuid.New())
	assert.False(t, ok)
}

func TestCatalog_Listings(t *testing.T) {
	c, products, articles := seeded(t)

	assert.Equal(t, products, c.Products())
	assert.Equal(t, articles, c.Articles())

	np, na := c.Len()
	assert.Equal(t, 3, np)
	assert.Equal(t, 2, na)
}

func TestCatalog_AllSearchable(t *testing.T) {
	c, products, articles := seeded(t)

	all := c.AllSearchable()
	require.Len(t, all, len(products)+len(articles))

	var kinds []catalog.ContentType
	for _, s := range all {
		kinds = append(kinds, s.ContentType())
	}
	assert.Equal(t, []catalog.ContentType{
		catalog.ContentProduct, catalog.ContentProduct, catalog.ContentProduct,
		catalog.ContentArticle, catalog.ContentArticle,
	}, kinds)

	assert.Equal(t, all, c.AllSearchable(), "order is stable")
}

func TestCatalog_DuplicateID(t *testing.T) {
	c, products, articles := seeded(t)

	require.ErrorIs(t, c.AddProduct(products[0]), ErrDuplicateID)
	require.ErrorIs(t, c.AddArticle(articles[0]), ErrDuplicateID)

	np, na := c.Len()
	assert.Equal(t, 3, np)
	assert.Equal(t, 2, na)
}

func TestCatalog_SameNameDistinctEntries(t *testing.T) {
	c := NewCatalog()
	a, err := product.NewSimple("Хлеб6", 76)
	require.NoError(t, err)
	b, err := product.NewSimple("Хлеб6", 53)
	require.NoError(t, err)

	require.NoError(t, c.AddProduct(a))
	require.NoError(t, c.AddProduct(b))
	assert.Len(t, c.Products(), 2, "equal products remain distinct catalog entries")
}

func TestCatalog_ConcurrentReads(t *testing.T) {
	c, products, _ := seeded(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_, ok := c.LookupProduct(products[0].ID())
				assert.True(t, ok)
				assert.Len(t, c.AllSearchable(), 5)
			}
		}()
	}
	wg.Wait()
}
