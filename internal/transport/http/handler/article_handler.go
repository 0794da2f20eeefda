package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/render"
	"go-gin-blog/internal/service"
	"go-gin-blog/internal/transport/http/ez"
)

type ArticleHandler struct {
	svc service.ArticleService
	md  *render.Markdown
	log *zap.Logger
}

func NewArticleHandler(svc service.ArticleService, md *render.Markdown, l *zap.Logger) *ArticleHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &ArticleHandler{svc: svc, md: md, log: l}
}

type articleList struct {
	Total int              `json:"total"`
	Items []domain.Article `json:"items"`
}

type articleView struct {
	domain.Article
	HTML string `json:"html"`
}

// MountAPI 公开接口：只暴露已发布文章
func (h *ArticleHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api)

	ez.RegisterAction(e, ez.Action[struct{}, articleList]{
		Methods: []string{http.MethodGet},
		Path:    "/articles",
		Binder:  ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (articleList, error) {
			return h.list(c, domain.ListFilter{})
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, articleView]{
		Methods: []string{http.MethodGet},
		Path:    "/articles/:slug",
		Binder:  ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (articleView, error) {
			a, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"), false)
			if err != nil {
				return articleView{}, actionErr(err)
			}
			html, err := h.md.HTML(a.Content)
			if err != nil {
				// the raw markdown is still served
				h.log.Warn("render article", zap.String("slug", a.Slug), zap.Error(err))
			}
			return articleView{Article: *a, HTML: html}, nil
		},
	})
}

type listQuery struct {
	Status string `form:"status"` // all | published | draft
}

type createIn struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Published   *bool  `json:"published"`
	AuthorEmail string `json:"authorEmail"`
}

// MountAdmin 管理端接口：分组已要求 admin 角色
func (h *ArticleHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin)

	ez.RegisterAction(e, ez.Action[listQuery, articleList]{
		Methods: []string{http.MethodGet},
		Path:    "/articles",
		Binder:  ez.BindQuery,
		Handler: func(c *gin.Context, in *listQuery) (articleList, error) {
			var f domain.ListFilter
			switch strings.ToLower(strings.TrimSpace(in.Status)) {
			case "", "all":
				f.IncludeUnpublished = true
			case "published":
			case "draft", "drafts":
				f.IncludeUnpublished, f.OnlyDrafts = true, true
			default:
				return articleList{}, ez.BadRequest("status must be all, published or draft")
			}
			return h.list(c, f)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Article]{
		Methods: []string{http.MethodGet},
		Path:    "/articles/:id",
		Binder:  ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Article, error) {
			a, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, actionErr(err)
			}
			return a, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Article]{
		Methods: []string{http.MethodGet},
		Path:    "/slugs/:slug",
		Binder:  ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Article, error) {
			a, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"), true)
			if err != nil {
				return nil, actionErr(err)
			}
			return a, nil
		},
	})

	ez.RegisterAction(e, ez.Action[createIn, *domain.Article]{
		Methods: []string{http.MethodPost},
		Path:    "/articles",
		Binder:  ez.BindJSON,
		Handler: func(c *gin.Context, in *createIn) (*domain.Article, error) {
			email := strings.TrimSpace(in.AuthorEmail)
			if email == "" {
				email = c.GetString("email")
			}
			a, err := h.svc.Create(c.Request.Context(), domain.NewArticle{
				Title:       in.Title,
				Content:     in.Content,
				Published:   in.Published,
				AuthorEmail: email,
			})
			if err != nil {
				return nil, actionErr(err)
			}
			return a, nil
		},
	})

	ez.RegisterAction(e, ez.Action[domain.Patch, *domain.Article]{
		Methods: []string{http.MethodPut, http.MethodPatch},
		Path:    "/articles/:id",
		Binder:  ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.Patch) (*domain.Article, error) {
			a, err := h.svc.Update(c.Request.Context(), c.Param("id"), *in)
			if err != nil {
				return nil, actionErr(err)
			}
			return a, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Article]{
		Methods: []string{http.MethodDelete},
		Path:    "/articles/:id",
		Binder:  ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Article, error) {
			a, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, actionErr(err)
			}
			return a, nil
		},
	})
}

func (h *ArticleHandler) list(c *gin.Context, f domain.ListFilter) (articleList, error) {
	as, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		return articleList{}, actionErr(err)
	}
	if as == nil {
		as = []domain.Article{}
	}
	return articleList{Total: len(as), Items: as}, nil
}
