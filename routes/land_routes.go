package routes

import (
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/service"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"

	"github.com/gin-gonic/gin"
)

// LandRoutes registers the land leasing marketplace under /api/lands.
// Listings are browsable without a token; everything that touches
// ownership requires authentication. Mutation authorization (owner or
// admin) is enforced inside the service.
func LandRoutes(r *gin.Engine, landService service.LandService) {
	landGroup := r.Group("/api/lands")
	{
		landGroup.GET("/", landService.GetLands)

		authed := landGroup.Group("", middleware.AuthMiddleware())
		{
			authed.GET("/my-lands", landService.GetMyLands)
			authed.POST("/", landService.CreateLand)
			authed.PUT("/:id/lease", landService.LeaseLand)
			authed.PUT("/:id", landService.UpdateLand)
			authed.DELETE("/:id", landService.DeleteLand)
		}

		landGroup.GET("/:id", landService.GetLand)
	}
}
