package routes

import (
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/service"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"

	"github.com/gin-gonic/gin"
)

// CropRoutes registers seasonal crop suggestions under /api/crops.
func CropRoutes(r *gin.Engine, cropService service.CropService) {
	cropGroup := r.Group("/api/crops", middleware.AuthMiddleware())
	{
		cropGroup.GET("/recommendations", cropService.GetRecommendations)
		cropGroup.GET("/by-location", cropService.GetByLocation)
	}
}
