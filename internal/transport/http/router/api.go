package router

import "github.com/gin-gonic/gin"

// NewAPIEngine 用户端：/api/v1
func NewAPIEngine(d Deps) *gin.Engine {
	r := newEngine(d)
	d.Modules.MountAllAPI(r.Group("/api/v1"))
	return r
}
