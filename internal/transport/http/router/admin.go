package router

import "github.com/gin-gonic/gin"

// NewAdminEngine 管理端：/admin/v1，整个分组要求 admin 角色（requireAdmin 即 AuthJWT(j, "admin", users)）
func NewAdminEngine(d Deps, requireAdmin gin.HandlerFunc) *gin.Engine {
	r := newEngine(d)
	admin := r.Group("/admin/v1")
	admin.Use(requireAdmin)
	d.Modules.MountAllAdmin(admin)
	return r
}
