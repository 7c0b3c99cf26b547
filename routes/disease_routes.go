package routes

import (
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/service"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"

	"github.com/gin-gonic/gin"
)

// DiseaseRoutes registers the disease case pipeline under /api/diseases.
// Every endpoint requires authentication; review and approve are
// restricted to specialists.
func DiseaseRoutes(r *gin.Engine, diseaseService service.DiseaseService) {
	diseaseGroup := r.Group("/api/diseases", middleware.AuthMiddleware())
	{
		diseaseGroup.POST("/check", diseaseService.CheckDisease)
		diseaseGroup.GET("/", diseaseService.GetDiseases)
		diseaseGroup.GET("/:id", diseaseService.GetDisease)
		diseaseGroup.PUT("/:id/review",
			middleware.RequireRoles(authz.RoleSpecialist), diseaseService.ReviewDisease)
		diseaseGroup.PUT("/:id/approve",
			middleware.RequireRoles(authz.RoleSpecialist), diseaseService.ApproveDisease)
	}
}
