package service

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.uber.org/zap"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/slug"
	"go-gin-blog/pkg/utils"
)

// ArticleService is the article lifecycle exposed to handlers. Every failure it
// returns carries a domain.Kind.
type ArticleService interface {
	Create(ctx context.Context, in domain.NewArticle) (*domain.Article, error)
	Update(ctx context.Context, id string, p domain.Patch) (*domain.Article, error)
	Delete(ctx context.Context, id string) (*domain.Article, error)
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string, includeUnpublished bool) (*domain.Article, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Article, error)
}

// MutationRecorder observes the outcome of create/update/delete.
// kind is empty on success.
type MutationRecorder interface {
	RecordMutation(op string, kind domain.Kind)
}

type Option func(*articleService)

func WithLogger(l *zap.Logger) Option { return func(s *articleService) { s.log = l } }

// WithClock replaces time.Now; tests pin timestamps with it.
func WithClock(now func() time.Time) Option { return func(s *articleService) { s.now = now } }

func WithRecorder(r MutationRecorder) Option { return func(s *articleService) { s.rec = r } }

type articleService struct {
	store   domain.ArticleStore
	authors domain.AuthorResolver
	log     *zap.Logger
	now     func() time.Time
	rec     MutationRecorder
}

func NewArticleService(store domain.ArticleStore, authors domain.AuthorResolver, opts ...Option) ArticleService {
	s := &articleService{
		store:   store,
		authors: authors,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *articleService) Create(ctx context.Context, in domain.NewArticle) (*domain.Article, error) {
	title := strings.TrimSpace(in.Title)
	email := strings.TrimSpace(in.AuthorEmail)
	err := firstInvalid(
		check("title", title, validation.Required, validation.RuneLength(1, domain.MaxTitleLen)),
		check("content", strings.TrimSpace(in.Content), validation.Required),
		check("authorEmail", email, validation.Required, is.EmailFormat),
	)
	if err != nil {
		return nil, s.fail("create", err)
	}
	sl, err := deriveSlug(title)
	if err != nil {
		return nil, s.fail("create", err)
	}

	authorID, err := s.authors.ResolveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, s.fail("create", domain.NewError(domain.KindAuthorNotFound, "authorEmail", "no user with email "+email))
		}
		return nil, s.fail("create", domain.Wrap(domain.KindStoreUnavailable, "resolve author", err))
	}

	now := s.stamp()
	created, err := s.store.Insert(ctx, &domain.Article{
		ID:        utils.NewID(),
		Title:     title,
		Slug:      sl,
		Content:   in.Content,
		Published: in.Published != nil && *in.Published,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, s.fail("create", s.storeErr(err, sl))
	}
	s.log.Info("article created",
		zap.String("id", created.ID), zap.String("slug", created.Slug), zap.Bool("published", created.Published))
	s.record("create", "")
	return created, nil
}

func (s *articleService) Update(ctx context.Context, id string, p domain.Patch) (*domain.Article, error) {
	if p.Empty() {
		return nil, s.fail("update", domain.NewError(domain.KindEmptyPatch, "", "at least one of title, content or published is required"))
	}

	fields := domain.ArticleFields{Content: p.Content, Published: p.Published}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if err := check("title", title, validation.Required, validation.RuneLength(1, domain.MaxTitleLen)); err != nil {
			return nil, s.fail("update", err)
		}
		sl, err := deriveSlug(title)
		if err != nil {
			return nil, s.fail("update", err)
		}
		fields.Title, fields.Slug = &title, &sl
	}
	if p.Content != nil {
		if err := check("content", strings.TrimSpace(*p.Content), validation.Required); err != nil {
			return nil, s.fail("update", err)
		}
	}
	if strings.TrimSpace(id) == "" {
		return nil, s.fail("update", notFound(id))
	}

	fields.UpdatedAt = s.stamp()
	updated, err := s.store.Update(ctx, id, fields)
	if err != nil {
		sl := ""
		if fields.Slug != nil {
			sl = *fields.Slug
		}
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, s.fail("update", notFound(id))
		}
		return nil, s.fail("update", s.storeErr(err, sl))
	}
	s.log.Info("article updated", zap.String("id", updated.ID), zap.String("slug", updated.Slug))
	s.record("update", "")
	return updated, nil
}

func (s *articleService) Delete(ctx context.Context, id string) (*domain.Article, error) {
	if strings.TrimSpace(id) == "" {
		return nil, s.fail("delete", notFound(id))
	}
	gone, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, s.fail("delete", notFound(id))
		}
		return nil, s.fail("delete", s.storeErr(err, ""))
	}
	s.log.Info("article deleted", zap.String("id", gone.ID), zap.String("slug", gone.Slug))
	s.record("delete", "")
	return gone, nil
}

func (s *articleService) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	if strings.TrimSpace(id) == "" {
		return nil, notFound(id)
	}
	a, err := s.store.SelectByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, notFound(id)
		}
		return nil, s.storeErr(err, "")
	}
	return a, nil
}

// GetBySlug hides drafts unless includeUnpublished is set.
func (s *articleService) GetBySlug(ctx context.Context, raw string, includeUnpublished bool) (*domain.Article, error) {
	sl := slug.Normalize(raw)
	if sl == "" {
		return nil, notFound(raw)
	}
	a, err := s.store.SelectBySlug(ctx, sl)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecord) {
			return nil, notFound(sl)
		}
		return nil, s.storeErr(err, "")
	}
	if !a.Published && !includeUnpublished {
		return nil, notFound(sl)
	}
	return a, nil
}

func (s *articleService) List(ctx context.Context, f domain.ListFilter) ([]domain.Article, error) {
	if !f.IncludeUnpublished {
		f.OnlyDrafts = false
	}
	as, err := s.store.SelectAll(ctx, f)
	if err != nil {
		return nil, s.storeErr(err, "")
	}
	return as, nil
}

// stamp truncates to microseconds, the finest precision postgres keeps.
func (s *articleService) stamp() time.Time { return s.now().UTC().Truncate(time.Microsecond) }

func (s *articleService) storeErr(err error, sl string) error {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return domain.NewError(domain.KindSlugConflict, "slug", "slug "+sl+" is already taken")
	case errors.Is(err, domain.ErrBadReference):
		return domain.NewError(domain.KindAuthorNotFound, "authorEmail", "author no longer exists")
	}
	s.log.Error("article store failure", zap.Error(err))
	return domain.Wrap(domain.KindStoreUnavailable, "article store", err)
}

func (s *articleService) fail(op string, err error) error {
	kind := domain.KindOf(err)
	if kind != domain.KindStoreUnavailable {
		s.log.Debug("article "+op+" rejected", zap.String("kind", string(kind)), zap.Error(err))
	}
	s.record(op, kind)
	return err
}

func (s *articleService) record(op string, kind domain.Kind) {
	if s.rec != nil {
		s.rec.RecordMutation(op, kind)
	}
}

func notFound(ref string) error {
	return domain.NewError(domain.KindArticleNotFound, "", "article "+ref+" not found")
}

func deriveSlug(title string) (string, error) {
	sl := slug.Derive(title)
	switch {
	case sl == "":
		return "", domain.NewError(domain.KindInvalidField, "title", "must contain at least one letter or digit")
	case len(sl) > domain.MaxSlugLen:
		return "", domain.NewError(domain.KindInvalidField, "title", "derived slug is longer than 200 characters")
	}
	return sl, nil
}

// check runs ozzo rules against one value. A failed Required rule is a
// MissingField, anything else an InvalidField.
func check(field string, value any, rules ...validation.Rule) error {
	err := validation.Validate(value, rules...)
	if err == nil {
		return nil
	}
	kind := domain.KindInvalidField
	var ve validation.Error
	if errors.As(err, &ve) && ve.Code() == validation.ErrRequired.Code() {
		kind = domain.KindMissingField
	}
	return domain.NewError(kind, field, err.Error())
}

func firstInvalid(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
