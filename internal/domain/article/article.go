package article

import (
	"github.com/google/uuid"

	"github.com/xenking/skyshop/internal/domain/catalog"
)

var _ catalog.Searchable = (*Article)(nil)

// Article is an informational catalog entry.
type Article struct {
	id    uuid.UUID
	title string
	text  string
}

// New creates an Article. The title must not be blank.
func New(title, text string) (*Article, error) {
	if err := catalog.ValidateName(title); err != nil {
		return nil, err
	}
	return &Article{id: catalog.NewID(), title: title, text: text}, nil
}

func (a *Article) ID() uuid.UUID                    { return a.id }
func (a *Article) Title() string                    { return a.title }
func (a *Article) Text() string                     { return a.text }
func (a *Article) SearchTerm() string               { return a.title }
func (a *Article) DisplayName() string              { return a.title }
func (a *Article) ContentType() catalog.ContentType { return catalog.ContentArticle }

func (a *Article) String() string {
	return "Название статьи: " + a.title + " - Текст статьи: " + a.text
}

// Equal reports whether a and b share a title. Text and identifier are
// ignored.
func Equal(a, b *Article) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.title == b.title
}

// Repository defines read operations for articles.
type Repository interface {
	Articles() []*Article
}
