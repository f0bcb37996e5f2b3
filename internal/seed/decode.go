package seed

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/xenking/skyshop/db"
	"github.com/xenking/skyshop/internal/domain/product"
)

const decodeBufSize = 4096

var gzipMagic = []byte{0x1f, 0x8b}

// Decode parses a seed document from r. Gzip-compressed input is detected
// and decompressed transparently.
func Decode(r io.Reader) (*Set, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "peek")
	}

	var src io.Reader = br
	if bytes.Equal(head, gzipMagic) {
		gz, err := pgzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "create gzip reader")
		}
		defer func() { _ = gz.Close() }()
		src = gz
	}

	return decodeSet(jx.Decode(src, decodeBufSize))
}

// DecodeBytes parses a seed document held in memory.
func DecodeBytes(data []byte) (*Set, error) {
	return Decode(bytes.NewReader(data))
}

func decodeSet(d *jx.Decoder) (*Set, error) {
	set := &Set{}
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "products":
			return d.Arr(func(d *jx.Decoder) error {
				e, err := decodeProduct(d)
				if err != nil {
					return errors.Wrapf(err, "products[%d]", len(set.Products))
				}
				set.Products = append(set.Products, e)
				return nil
			})
		case "articles":
			return d.Arr(func(d *jx.Decoder) error {
				e, err := decodeArticle(d)
				if err != nil {
					return errors.Wrapf(err, "articles[%d]", len(set.Articles))
				}
				set.Articles = append(set.Articles, e)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errors.Wrap(err, "decode seed")
	}
	return set, nil
}

func decodeProduct(d *jx.Decoder) (ProductEntry, error) {
	var e ProductEntry
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "kind":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "kind")
			}
			e.Kind = product.Kind(v)
		case "name":
			v, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "name")
			}
			e.Name = v
		case "price":
			n, err := d.Num()
			if err != nil {
				return errors.Wrap(err, "price")
			}
			v, err := decimal.NewFromString(n.String())
			if err != nil {
				return errors.Wrap(err, "price")
			}
			e.Price = v
		case "discount":
			v, err := d.Int()
			if err != nil {
				return errors.Wrap(err, "discount")
			}
			e.Discount = v
		default:
			return d.Skip()
		}
		return nil
	})
	return e, err
}

func decodeArticle(d *jx.Decoder) (ArticleEntry, error) {
	var e ArticleEntry
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "title":
			e.Title, err = d.Str()
		case "text":
			e.Text, err = d.Str()
		default:
			return d.Skip()
		}
		return errors.Wrap(err, key)
	})
	return e, err
}

// FileSource reads a seed document from a file on disk. Files may be gzip
// compressed.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (*Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", s.Path)
	}
	defer func() { _ = f.Close() }()

	set, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", s.Path)
	}
	return set, nil
}

// EmbeddedSource yields the default catalog compiled into the binary.
type EmbeddedSource struct{}

// Load implements Source.
func (EmbeddedSource) Load(context.Context) (*Set, error) {
	return DecodeBytes(db.Catalog)
}
