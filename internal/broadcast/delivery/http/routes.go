package http

import (
	"broadcast-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the broadcast and template routes under the given group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	broadcasts := r.Group("/broadcasts", mw.Scope())
	{
		broadcasts.POST("", h.Create)
		broadcasts.GET("", h.List)
		broadcasts.PATCH("/:id", h.Update)
		broadcasts.POST("/:id/send", h.Send)
		broadcasts.POST("/:id/cancel", h.Cancel)
		broadcasts.POST("/:id/acknowledgments", h.Acknowledge)
		broadcasts.GET("/:id/status", h.Status)
	}

	templates := r.Group("/templates")
	{
		templates.GET("", h.ListTemplates)
		templates.POST("/preview", h.PreviewTemplate)
	}
}
