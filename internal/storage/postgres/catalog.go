package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/xenking/skyshop/internal/domain/product"
	"github.com/xenking/skyshop/internal/seed"
)

const (
	listProductsSQL = `SELECT kind, name, price, discount FROM products ORDER BY position`
	listArticlesSQL = `SELECT title, body FROM articles ORDER BY position`

	upsertProductSQL = `INSERT INTO products (position, kind, name, price, discount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (position) DO UPDATE
		SET kind = EXCLUDED.kind, name = EXCLUDED.name, price = EXCLUDED.price, discount = EXCLUDED.discount`

	upsertArticleSQL = `INSERT INTO articles (position, title, body)
		VALUES ($1, $2, $3)
		ON CONFLICT (position) DO UPDATE
		SET title = EXCLUDED.title, body = EXCLUDED.body`

	pruneProductsSQL = `DELETE FROM products WHERE position >= $1`
	pruneArticlesSQL = `DELETE FROM articles WHERE position >= $1`
)

var _ seed.Source = (*CatalogRepository)(nil)

// DB is the subset of *pgxpool.Pool and pgx.Tx the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CatalogRepository stores seed entries keyed by their position in the
// seed document.
type CatalogRepository struct {
	db DB
}

// NewCatalogRepository returns a CatalogRepository that uses db.
func NewCatalogRepository(db DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load returns every stored entry ordered by position.
func (r *CatalogRepository) Load(ctx context.Context) (*seed.Set, error) {
	rows, err := r.db.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, errors.Wrap(err, "scan products")
	}

	rows, err = r.db.Query(ctx, listArticlesSQL)
	if err != nil {
		return nil, errors.Wrap(err, "list articles")
	}
	articles, err := pgx.CollectRows(rows, scanArticle)
	if err != nil {
		return nil, errors.Wrap(err, "scan articles")
	}

	zctx.From(ctx).Debug("Loaded catalog from database",
		zap.Int("products", len(products)),
		zap.Int("articles", len(articles)),
	)
	return &seed.Set{Products: products, Articles: articles}, nil
}

// Replace writes set in a single transaction: every entry is upserted by
// position and rows beyond the new counts are pruned. Nothing is written if
// any statement fails.
func (r *CatalogRepository) Replace(ctx context.Context, set *seed.Set) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		w := NewCatalogRepository(tx)
		for i, p := range set.Products {
			if err := w.UpsertProduct(ctx, i, p); err != nil {
				return errors.Wrapf(err, "product %q", p.Name)
			}
		}
		for i, a := range set.Articles {
			if err := w.UpsertArticle(ctx, i, a); err != nil {
				return errors.Wrapf(err, "article %q", a.Title)
			}
		}
		if err := w.Prune(ctx, len(set.Products), len(set.Articles)); err != nil {
			return errors.Wrap(err, "prune")
		}
		return nil
	})
}

// UpsertProduct writes e at position.
func (r *CatalogRepository) UpsertProduct(ctx context.Context, position int, e seed.ProductEntry) error {
	if _, err := r.db.Exec(ctx, upsertProductSQL, position, string(e.Kind), e.Name, e.Price, e.Discount); err != nil {
		return errors.Wrapf(err, "upsert product at %d", position)
	}
	return nil
}

// UpsertArticle writes e at position.
func (r *CatalogRepository) UpsertArticle(ctx context.Context, position int, e seed.ArticleEntry) error {
	if _, err := r.db.Exec(ctx, upsertArticleSQL, position, e.Title, e.Text); err != nil {
		return errors.Wrapf(err, "upsert article at %d", position)
	}
	return nil
}

// Prune removes entries at or beyond the given counts, so a shorter seed
// document replaces a longer one.
func (r *CatalogRepository) Prune(ctx context.Context, products, articles int) error {
	if _, err := r.db.Exec(ctx, pruneProductsSQL, products); err != nil {
		return errors.Wrap(err, "prune products")
	}
	if _, err := r.db.Exec(ctx, pruneArticlesSQL, articles); err != nil {
		return errors.Wrap(err, "prune articles")
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (seed.ProductEntry, error) {
	var (
		e    seed.ProductEntry
		kind string
	)
	err := row.Scan(&kind, &e.Name, &e.Price, &e.Discount)
	e.Kind = product.Kind(kind)
	return e, err
}

func scanArticle(row pgx.CollectableRow) (seed.ArticleEntry, error) {
	var e seed.ArticleEntry
	err := row.Scan(&e.Title, &e.Text)
	return e, err
}
