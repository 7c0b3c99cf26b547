package routes

import (
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/service"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"

	"github.com/gin-gonic/gin"
)

// AdminRoutes registers user management and platform stats under
// /api/users. The whole group is admin only.
func AdminRoutes(r *gin.Engine, adminService service.AdminService) {
	adminGroup := r.Group("/api/users",
		middleware.AuthMiddleware(), middleware.RequireRoles(authz.RoleAdmin))
	{
		adminGroup.GET("/", adminService.GetAllUsers)
		adminGroup.GET("/stats", adminService.GetStats)
		adminGroup.GET("/:id", adminService.GetUserDetail)
		adminGroup.PUT("/:id/role", adminService.UpdateUserRole)
		adminGroup.DELETE("/:id", adminService.DeleteUser)
	}
}
