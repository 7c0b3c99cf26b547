package routes

import (
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/service"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"

	"github.com/gin-gonic/gin"
)

// MedicineRoutes registers the medicine catalog under /api/medicines.
// Reads are open to any authenticated principal; writes need the
// specialist or admin role, deletion admin only.
func MedicineRoutes(r *gin.Engine, medicineService service.MedicineService) {
	medicineGroup := r.Group("/api/medicines", middleware.AuthMiddleware())
	{
		medicineGroup.GET("/", medicineService.GetMedicines)
		medicineGroup.GET("/:id", medicineService.GetMedicine)
		medicineGroup.POST("/",
			middleware.RequireRoles(authz.RoleSpecialist, authz.RoleAdmin), medicineService.CreateMedicine)
		medicineGroup.PUT("/:id",
			middleware.RequireRoles(authz.RoleSpecialist, authz.RoleAdmin), medicineService.UpdateMedicine)
		medicineGroup.PUT("/:id/approve",
			middleware.RequireRoles(authz.RoleSpecialist, authz.RoleAdmin), medicineService.ApproveMedicine)
		medicineGroup.DELETE("/:id",
			middleware.RequireRoles(authz.RoleAdmin), medicineService.DeleteMedicine)
	}
}
