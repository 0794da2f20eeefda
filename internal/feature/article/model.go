package article

import (
	"time"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/feature/user"
)

// ArticleModel maps the articles table. Timestamps are written by the service,
// never by gorm hooks, so the stored values match what callers were handed.
type ArticleModel struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)"`
	Title     string         `gorm:"size:200;not null"`
	Slug      string         `gorm:"size:200;not null;uniqueIndex:idx_articles_slug"`
	Content   string         `gorm:"type:text;not null"`
	Published bool           `gorm:"not null;default:false;index:idx_articles_published_created,priority:1"`
	AuthorID  string         `gorm:"type:varchar(36);not null;index"`
	Author    user.UserModel `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt time.Time      `gorm:"not null;index:idx_articles_published_created,priority:2"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (ArticleModel) TableName() string { return "articles" }

func (m *ArticleModel) ToDomain() *domain.Article {
	return &domain.Article{
		ID:        m.ID,
		Title:     m.Title,
		Slug:      m.Slug,
		Content:   m.Content,
		Published: m.Published,
		AuthorID:  m.AuthorID,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func FromDomain(a *domain.Article) *ArticleModel {
	return &ArticleModel{
		ID:        a.ID,
		Title:     a.Title,
		Slug:      a.Slug,
		Content:   a.Content,
		Published: a.Published,
		AuthorID:  a.AuthorID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
