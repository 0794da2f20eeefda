package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/feature/article"
)

type ArticleRepo struct{ db *gorm.DB }

func NewArticleRepo(db *gorm.DB) *ArticleRepo { return &ArticleRepo{db: db} }

var _ domain.ArticleStore = (*ArticleRepo)(nil)

func (r *ArticleRepo) Insert(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	m := article.FromDomain(a)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

func (r *ArticleRepo) SelectByID(ctx context.Context, id string) (*domain.Article, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *ArticleRepo) SelectBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return r.first(r.db.WithContext(ctx), "slug = ?", slug)
}

func (r *ArticleRepo) SelectAll(ctx context.Context, f domain.ListFilter) ([]domain.Article, error) {
	q := r.db.WithContext(ctx).Model(&article.ArticleModel{})
	switch {
	case !f.IncludeUnpublished:
		q = q.Where("published = ?", true)
	case f.OnlyDrafts:
		q = q.Where("published = ?", false)
	}
	var ms []article.ArticleModel
	// ids are UUIDv7, so id DESC puts the later insert first among equal timestamps
	if err := q.Order("created_at DESC").Order("id DESC").Find(&ms).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]domain.Article, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out, nil
}

func (r *ArticleRepo) Update(ctx context.Context, id string, f domain.ArticleFields) (*domain.Article, error) {
	var out *domain.Article
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := r.first(tx, "id = ?", id)
		if err != nil {
			return err
		}
		// a writer with a lagging clock must not move updated_at behind created_at
		if f.UpdatedAt.Before(cur.CreatedAt) {
			f.UpdatedAt = cur.CreatedAt
		}
		set := map[string]any{"updated_at": f.UpdatedAt}
		if f.Title != nil {
			set["title"] = *f.Title
		}
		if f.Slug != nil {
			set["slug"] = *f.Slug
		}
		if f.Content != nil {
			set["content"] = *f.Content
		}
		if f.Published != nil {
			set["published"] = *f.Published
		}
		if err := tx.Model(&article.ArticleModel{}).Where("id = ?", id).Updates(set).Error; err != nil {
			return translate(err)
		}
		out, err = r.first(tx, "id = ?", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ArticleRepo) Delete(ctx context.Context, id string) (*domain.Article, error) {
	var out *domain.Article
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := r.first(tx, "id = ?", id)
		if err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&article.ArticleModel{})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			// lost a race with another delete
			return domain.ErrNoRecord
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Purge removes every article. Used by seeding only.
func (r *ArticleRepo) Purge(ctx context.Context) error {
	return translate(r.db.WithContext(ctx).Where("1 = 1").Delete(&article.ArticleModel{}).Error)
}

func (r *ArticleRepo) first(db *gorm.DB, cond string, arg any) (*domain.Article, error) {
	var m article.ArticleModel
	if err := db.Where(cond, arg).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}
