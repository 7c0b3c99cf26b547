package routes

import (
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/service"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"

	"github.com/gin-gonic/gin"
)

// ProductRoutes registers the marketplace catalog under /api/products.
// Browsing is public; catalog management is admin only.
func ProductRoutes(r *gin.Engine, productService service.ProductService) {
	productGroup := r.Group("/api/products")
	{
		productGroup.GET("/", productService.GetProducts)
		productGroup.GET("/:id", productService.GetProduct)

		adminOnly := productGroup.Group("",
			middleware.AuthMiddleware(), middleware.RequireRoles(authz.RoleAdmin))
		{
			adminOnly.POST("/", productService.CreateProduct)
			adminOnly.PUT("/:id", productService.UpdateProduct)
			adminOnly.DELETE("/:id", productService.DeleteProduct)
		}
	}
}
