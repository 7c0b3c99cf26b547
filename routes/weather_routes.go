package routes

import (
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/service"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"

	"github.com/gin-gonic/gin"
)

// WeatherRoutes registers the weather advisory proxy under /api/weather.
func WeatherRoutes(r *gin.Engine, weatherService service.WeatherService) {
	weatherGroup := r.Group("/api/weather", middleware.AuthMiddleware())
	{
		weatherGroup.GET("/current", weatherService.GetCurrent)
		weatherGroup.GET("/alerts", weatherService.GetAlerts)
	}
}
