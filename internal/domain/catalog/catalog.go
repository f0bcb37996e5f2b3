// Package catalog defines the capability shared by every entity kind stored in
// the shop catalog: a stable identifier and the data the search engine needs.
package catalog

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrInvalidName is returned by entity constructors when the display name is
// empty or consists only of whitespace.
var ErrInvalidName = errors.New("invalid name")

// ContentType tags the entity kind in search results.
type ContentType string

const (
	// ContentProduct marks priced products.
	ContentProduct ContentType = "PRODUCT"
	// ContentArticle marks informational articles.
	ContentArticle ContentType = "ARTICLE"
)

// Searchable is implemented by every entity that participates in search.
type Searchable interface {
	ID() uuid.UUID
	// SearchTerm is the string matched by the search engine.
	SearchTerm() string
	ContentType() ContentType
	DisplayName() string
}

// NewID returns a fresh random identifier.
func NewID() uuid.UUID {
	return uuid.New()
}

// ValidateName checks that name is usable as a display name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrapf(ErrInvalidName, "name %q", name)
	}
	return nil
}

// Describe returns the display representation of s, for example
// "имя Соль -объекта - тип PRODUCT -объекта" in double quotes.
func Describe(s Searchable) string {
	return `"имя ` + s.SearchTerm() + ` -объекта - тип ` + string(s.ContentType()) + ` -объекта"`
}
