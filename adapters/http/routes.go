package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the directory API on the router. Admin endpoints
// mutate, public endpoints only read.
func RegisterRoutes(router *gin.Engine, h *ProfileHandler) {
	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.GET("/profiles", h.ListProfiles)
		api.GET("/profiles/:id", h.GetProfile)

		api.GET("/selection", h.GetSelection)
		api.PUT("/selection", h.SetSelection)

		admin := api.Group("/admin")
		{
			profiles := admin.Group("/profiles")
			{
				profiles.POST("", h.AddProfile)
				profiles.PUT("/:id", h.UpdateProfile)
				profiles.DELETE("/:id", h.DeleteProfile)
			}
		}
	}
}
