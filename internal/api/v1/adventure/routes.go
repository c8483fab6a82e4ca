package adventure

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the adventure endpoints. The shared-token lookup is
// public; everything else requires authentication.
func RegisterRoutes(public, authorized *gin.RouterGroup, h *Handler) {
	public.GET("/adventures/shared/:token", h.Shared)

	adventures := authorized.Group("/adventures")
	adventures.POST("/generate", h.Generate)
	adventures.GET("/my-history", h.History)
	adventures.GET("/quota", h.Quota)
	adventures.POST("/:id/share", h.Share)
	adventures.DELETE("/:id", h.Delete)
}
