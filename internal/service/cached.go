package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"go-gin-blog/internal/core/cache"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/slug"
)

// CachedArticles serves the public reads of an ArticleService from redis.
// Keys carry a generation number that every successful mutation advances, so
// stale entries are never read again and simply expire.
type CachedArticles struct {
	ArticleService
	c      *cache.Cache
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

func NewCachedArticles(inner ArticleService, c *cache.Cache, prefix string, ttl time.Duration, log *zap.Logger) *CachedArticles {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedArticles{ArticleService: inner, c: c, prefix: prefix, ttl: ttl, log: log}
}

func (s *CachedArticles) Create(ctx context.Context, in domain.NewArticle) (*domain.Article, error) {
	a, err := s.ArticleService.Create(ctx, in)
	if err == nil {
		s.bump(ctx)
	}
	return a, err
}

func (s *CachedArticles) Update(ctx context.Context, id string, p domain.Patch) (*domain.Article, error) {
	a, err := s.ArticleService.Update(ctx, id, p)
	if err == nil {
		s.bump(ctx)
	}
	return a, err
}

func (s *CachedArticles) Delete(ctx context.Context, id string) (*domain.Article, error) {
	a, err := s.ArticleService.Delete(ctx, id)
	if err == nil {
		s.bump(ctx)
	}
	return a, err
}

func (s *CachedArticles) GetBySlug(ctx context.Context, sl string, includeUnpublished bool) (*domain.Article, error) {
	if includeUnpublished {
		return s.ArticleService.GetBySlug(ctx, sl, true)
	}
	sl = slug.Normalize(sl)
	key, ok := s.key(ctx, "slug:"+sl)
	if !ok {
		return s.ArticleService.GetBySlug(ctx, sl, false)
	}
	return cache.GetOrLoadJSON(s.c, ctx, key, s.ttl, func(ctx context.Context) (*domain.Article, error) {
		return s.ArticleService.GetBySlug(ctx, sl, false)
	})
}

func (s *CachedArticles) List(ctx context.Context, f domain.ListFilter) ([]domain.Article, error) {
	if f.IncludeUnpublished {
		return s.ArticleService.List(ctx, f)
	}
	key, ok := s.key(ctx, "list:public")
	if !ok {
		return s.ArticleService.List(ctx, f)
	}
	out, err := cache.GetOrLoadJSON(s.c, ctx, key, s.ttl, func(ctx context.Context) (*[]domain.Article, error) {
		as, err := s.ArticleService.List(ctx, f)
		if err != nil {
			return nil, err
		}
		return &as, nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil || *out == nil {
		return []domain.Article{}, nil
	}
	return *out, nil
}

func (s *CachedArticles) genKey() string { return s.prefix + ":gen" }

func (s *CachedArticles) key(ctx context.Context, suffix string) (string, bool) {
	gen, err := s.c.Generation(ctx, s.genKey())
	if err != nil {
		s.log.Warn("article cache unavailable", zap.Error(err))
		return "", false
	}
	return s.prefix + ":v" + strconv.FormatInt(gen, 10) + ":" + suffix, true
}

// Invalidate drops every cached read, for writers that bypass the service.
func (s *CachedArticles) Invalidate(ctx context.Context) { s.bump(ctx) }

func (s *CachedArticles) bump(ctx context.Context) {
	if err := s.c.Bump(ctx, s.genKey()); err != nil {
		s.log.Warn("article cache invalidation failed", zap.Error(err))
	}
}
