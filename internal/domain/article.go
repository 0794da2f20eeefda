package domain

import (
	"context"
	"time"
)

const (
	MaxTitleLen = 200
	MaxSlugLen  = 200
)

type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewArticle is the input of a create. Published is optional and defaults to draft.
type NewArticle struct {
	Title       string
	Content     string
	Published   *bool
	AuthorEmail string
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

func (p Patch) Empty() bool { return p.Title == nil && p.Content == nil && p.Published == nil }

type ListFilter struct {
	IncludeUnpublished bool
	// OnlyDrafts narrows an admin listing to unpublished articles.
	OnlyDrafts bool
}

// ArticleFields is what the store writes on update. Slug travels with Title.
type ArticleFields struct {
	Title     *string
	Slug      *string
	Content   *string
	Published *bool
	UpdatedAt time.Time
}

// ArticleStore is the persistence boundary for articles.
// Insert returns ErrDuplicate on slug collision and ErrBadReference when the author is gone;
// Select*/Update/Delete return ErrNoRecord for unknown ids and slugs.
type ArticleStore interface {
	Insert(ctx context.Context, a *Article) (*Article, error)
	SelectByID(ctx context.Context, id string) (*Article, error)
	SelectBySlug(ctx context.Context, slug string) (*Article, error)
	SelectAll(ctx context.Context, f ListFilter) ([]Article, error)
	Update(ctx context.Context, id string, f ArticleFields) (*Article, error)
	Delete(ctx context.Context, id string) (*Article, error)
}

// AuthorResolver maps an author email to a user id. Unknown emails yield ErrNoRecord.
type AuthorResolver interface {
	ResolveByEmail(ctx context.Context, email string) (string, error)
}
