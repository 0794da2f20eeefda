package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/service"
	"go-gin-blog/internal/transport/http/ez"
)

type AuthHandler struct {
	svc *service.AuthService
	// requireLogin 即 AuthJWT 中间件，/me 必须挂在它后面才能拿到 userId
	requireLogin gin.HandlerFunc
}

func NewAuthHandler(svc *service.AuthService, requireLogin gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{svc: svc, requireLogin: requireLogin}
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginOut struct {
	Token string  `json:"token"`
	User  userOut `json:"user"`
}

func toUserOut(u *domain.User) userOut {
	return userOut{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (h *AuthHandler) MountAPI(api *gin.RouterGroup) {
	ez.RegisterAction(ez.New(api), ez.Action[loginIn, loginOut]{
		Methods: []string{http.MethodPost},
		Path:    "/auth/login",
		Binder:  ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			tok, u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, actionErr(err)
			}
			return loginOut{Token: tok, User: toUserOut(u)}, nil
		},
	})

	ez.RegisterAction(ez.New(api.Group("", h.requireLogin)), ez.Action[struct{}, userOut]{
		Methods: []string{http.MethodGet},
		Path:    "/me",
		Binder:  ez.BindNone,
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (userOut, error) {
			u, err := h.svc.Me(c.Request.Context(), c.GetString("userId"))
			if err != nil {
				return userOut{}, actionErr(err)
			}
			return toUserOut(u), nil
		},
	})
}
