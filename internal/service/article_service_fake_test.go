package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-blog/internal/domain"
)

var errDown = errors.New("connection refused")

// fakeStore fails any call whose func field is unset.
type fakeStore struct {
	insert       func(*domain.Article) (*domain.Article, error)
	selectByID   func(string) (*domain.Article, error)
	selectBySlug func(string) (*domain.Article, error)
	selectAll    func(domain.ListFilter) ([]domain.Article, error)
	update       func(string, domain.ArticleFields) (*domain.Article, error)
	delete       func(string) (*domain.Article, error)
	calls        int
}

var errUnexpected = errors.New("unexpected store call")

func (s *fakeStore) Insert(_ context.Context, a *domain.Article) (*domain.Article, error) {
	s.calls++
	if s.insert == nil {
		return nil, errUnexpected
	}
	return s.insert(a)
}

func (s *fakeStore) SelectByID(_ context.Context, id string) (*domain.Article, error) {
	s.calls++
	if s.selectByID == nil {
		return nil, errUnexpected
	}
	return s.selectByID(id)
}

func (s *fakeStore) SelectBySlug(_ context.Context, sl string) (*domain.Article, error) {
	s.calls++
	if s.selectBySlug == nil {
		return nil, errUnexpected
	}
	return s.selectBySlug(sl)
}

func (s *fakeStore) SelectAll(_ context.Context, f domain.ListFilter) ([]domain.Article, error) {
	s.calls++
	if s.selectAll == nil {
		return nil, errUnexpected
	}
	return s.selectAll(f)
}

func (s *fakeStore) Update(_ context.Context, id string, f domain.ArticleFields) (*domain.Article, error) {
	s.calls++
	if s.update == nil {
		return nil, errUnexpected
	}
	return s.update(id, f)
}

func (s *fakeStore) Delete(_ context.Context, id string) (*domain.Article, error) {
	s.calls++
	if s.delete == nil {
		return nil, errUnexpected
	}
	return s.delete(id)
}

type fakeResolver func(email string) (string, error)

func (f fakeResolver) ResolveByEmail(_ context.Context, email string) (string, error) { return f(email) }

func okResolver() fakeResolver { return func(string) (string, error) { return "u1", nil } }

func TestStoreFailuresSurfaceAsStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{
		insert:       func(*domain.Article) (*domain.Article, error) { return nil, errDown },
		selectByID:   func(string) (*domain.Article, error) { return nil, errDown },
		selectBySlug: func(string) (*domain.Article, error) { return nil, errDown },
		selectAll:    func(domain.ListFilter) ([]domain.Article, error) { return nil, errDown },
		update:       func(string, domain.ArticleFields) (*domain.Article, error) { return nil, errDown },
		delete:       func(string) (*domain.Article, error) { return nil, errDown },
	}
	svc := NewArticleService(store, okResolver())

	_, err := svc.Create(ctx, domain.NewArticle{Title: "T", Content: "c", AuthorEmail: "a@example.com"})
	assertDown(t, err)
	_, err = svc.Update(ctx, "id", domain.Patch{Published: ptr(true)})
	assertDown(t, err)
	_, err = svc.Delete(ctx, "id")
	assertDown(t, err)
	_, err = svc.GetByID(ctx, "id")
	assertDown(t, err)
	_, err = svc.GetBySlug(ctx, "s", false)
	assertDown(t, err)
	_, err = svc.List(ctx, domain.ListFilter{})
	assertDown(t, err)
}

func TestResolverFailureIsStoreUnavailable(t *testing.T) {
	store := &fakeStore{}
	svc := NewArticleService(store, fakeResolver(func(string) (string, error) { return "", errDown }))

	_, err := svc.Create(context.Background(), domain.NewArticle{Title: "T", Content: "c", AuthorEmail: "a@example.com"})
	assertDown(t, err)
	assert.Zero(t, store.calls)
}

func TestValidationNeverTouchesStore(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	resolved := 0
	svc := NewArticleService(store, fakeResolver(func(string) (string, error) {
		resolved++
		return "u1", nil
	}))

	_, err := svc.Create(ctx, domain.NewArticle{Title: "", Content: "c", AuthorEmail: "a@example.com"})
	assert.True(t, domain.IsKind(err, domain.KindMissingField))
	_, err = svc.Create(ctx, domain.NewArticle{Title: "???", Content: "c", AuthorEmail: "a@example.com"})
	assert.True(t, domain.IsKind(err, domain.KindInvalidField))
	_, err = svc.Update(ctx, "id", domain.Patch{})
	assert.True(t, domain.IsKind(err, domain.KindEmptyPatch))
	_, err = svc.Update(ctx, "id", domain.Patch{Title: ptr("")})
	assert.True(t, domain.IsKind(err, domain.KindMissingField))
	_, err = svc.Update(ctx, "", domain.Patch{Published: ptr(true)})
	assert.True(t, domain.IsKind(err, domain.KindArticleNotFound))

	assert.Zero(t, store.calls)
	assert.Zero(t, resolved)
}

func TestCreatePassesDerivedFieldsToStore(t *testing.T) {
	var got *domain.Article
	store := &fakeStore{insert: func(a *domain.Article) (*domain.Article, error) {
		got = a
		return a, nil
	}}
	svc := NewArticleService(store, okResolver())

	out, err := svc.Create(context.Background(), domain.NewArticle{Title: "  Hello World!  ", Content: "c", AuthorEmail: " a@example.com "})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Hello World!", got.Title)
	assert.Equal(t, "hello-world", got.Slug)
	assert.Equal(t, "u1", got.AuthorID)
	assert.False(t, got.Published)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	assert.Equal(t, got, out)
}

func TestUpdatePassesOnlyPresentFields(t *testing.T) {
	var fields domain.ArticleFields
	store := &fakeStore{update: func(_ string, f domain.ArticleFields) (*domain.Article, error) {
		fields = f
		return &domain.Article{ID: "id"}, nil
	}}
	svc := NewArticleService(store, okResolver())

	_, err := svc.Update(context.Background(), "id", domain.Patch{Published: ptr(false)})
	require.NoError(t, err)
	assert.Nil(t, fields.Title)
	assert.Nil(t, fields.Slug)
	assert.Nil(t, fields.Content)
	require.NotNil(t, fields.Published)
	assert.False(t, *fields.Published)
	assert.False(t, fields.UpdatedAt.IsZero())
}

func TestStoreConstraintErrorsMapToKinds(t *testing.T) {
	store := &fakeStore{
		insert: func(*domain.Article) (*domain.Article, error) { return nil, domain.ErrBadReference },
		delete: func(string) (*domain.Article, error) { return nil, domain.ErrNoRecord },
	}
	svc := NewArticleService(store, okResolver())

	_, err := svc.Create(context.Background(), domain.NewArticle{Title: "T", Content: "c", AuthorEmail: "a@example.com"})
	assert.True(t, domain.IsKind(err, domain.KindAuthorNotFound))
	_, err = svc.Delete(context.Background(), "id")
	assert.True(t, domain.IsKind(err, domain.KindArticleNotFound))
}

func assertDown(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindStoreUnavailable), "got %v", err)
	assert.ErrorIs(t, err, errDown)
}
