package ez

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resp "go-gin-blog/internal/transport/http/response"
)

type echoIn struct {
	Name string `json:"name" form:"name" binding:"required"`
}

func newEngine(a Action[echoIn, gin.H]) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/", func(c *gin.Context) {
		if uid := c.GetHeader("X-User"); uid != "" {
			c.Set("userId", uid)
			c.Set("role", c.GetHeader("X-Role"))
		}
	})
	RegisterAction(New(g), a)
	return r
}

func call(t *testing.T, r *gin.Engine, req *http.Request) resp.Resp {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var out resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterActionBindsAndWraps(t *testing.T) {
	r := newEngine(Action[echoIn, gin.H]{
		Methods: []string{http.MethodPut, http.MethodPatch},
		Path:    "/echo",
		Binder:  BindJSON,
		Handler: func(_ *gin.Context, in *echoIn) (gin.H, error) { return gin.H{"name": in.Name}, nil },
	})

	for _, m := range []string{http.MethodPut, http.MethodPatch} {
		out := call(t, r, httptest.NewRequest(m, "/echo", strings.NewReader(`{"name":"go"}`)))
		assert.Equal(t, resp.CodeOK, out.Code)
		assert.Equal(t, map[string]any{"name": "go"}, out.Data)
	}

	out := call(t, r, httptest.NewRequest(http.MethodPut, "/echo", strings.NewReader(`{}`)))
	assert.Equal(t, resp.CodeBadRequest, out.Code)
}

func TestRegisterActionQueryBinding(t *testing.T) {
	r := newEngine(Action[echoIn, gin.H]{
		Methods: []string{http.MethodGet},
		Path:    "/q",
		Binder:  BindQuery,
		Handler: func(_ *gin.Context, in *echoIn) (gin.H, error) { return gin.H{"name": in.Name}, nil },
	})
	out := call(t, r, httptest.NewRequest(http.MethodGet, "/q?name=blog", nil))
	assert.Equal(t, map[string]any{"name": "blog"}, out.Data)
}

func TestRegisterActionErrors(t *testing.T) {
	var fail error
	r := newEngine(Action[echoIn, gin.H]{
		Path:    "/fail",
		Binder:  BindNone,
		Auth:    true,
		Roles:   []string{"admin"},
		Handler: func(*gin.Context, *echoIn) (gin.H, error) { return nil, fail },
	})
	req := func(uid, role string) *http.Request {
		q := httptest.NewRequest(http.MethodPost, "/fail", nil)
		q.Header.Set("X-User", uid)
		q.Header.Set("X-Role", role)
		return q
	}

	assert.Equal(t, resp.CodeUnauthorized, call(t, r, req("", "")).Code)
	assert.Equal(t, resp.CodeForbidden, call(t, r, req("u1", "user")).Code)

	fail = Conflict("slug taken")
	out := call(t, r, req("u1", "admin"))
	assert.Equal(t, resp.CodeConflict, out.Code)
	assert.Equal(t, "slug taken", out.Msg)

	fail = errors.New("secret detail")
	out = call(t, r, req("u1", "admin"))
	assert.Equal(t, resp.CodeServerError, out.Code)
	assert.NotContains(t, out.Msg, "secret detail")
}
