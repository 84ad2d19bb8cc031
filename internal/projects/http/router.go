package http

import "github.com/gin-gonic/gin"

// Register attaches the project routes to the given router group.
func Register(rg *gin.RouterGroup, service ProjectsService, basePath string) {
	h := &Handler{service: service, basePath: basePath}

	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.GET("/:id/is-admin", h.isAdmin)
}
