package main

import (
	"log"
	"os"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/classifier"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/repository"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/service"
	"github.com/hridayesh-25/CropDiseaseAdvisory/database"
	"github.com/hridayesh-25/CropDiseaseAdvisory/routes"
	"github.com/hridayesh-25/CropDiseaseAdvisory/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment defaults")
	}

	dbConn, err := database.InitDB()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	database.RunSeeders(dbConn)

	redisClient := database.InitRedis()

	if err := os.MkdirAll(utils.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(dbConn.Postgres)
	adminRepo := repository.NewUserAdminRepository(dbConn.Postgres)
	diseaseRepo := repository.NewDiseaseRepository(dbConn.Mongo)
	medicineRepo := repository.NewMedicineRepository(dbConn.Mongo)
	productRepo := repository.NewProductRepository(dbConn.Mongo)
	landRepo := repository.NewLandRepository(dbConn.Mongo)

	// Services
	strictMatch := os.Getenv("MEDICINE_MATCH_STRICT") == "true"
	authService := service.NewAuthService(userRepo)
	diseaseService := service.NewDiseaseService(
		diseaseRepo,
		medicineRepo,
		userRepo,
		classifier.NewKeyword(),
		strictMatch,
	)
	medicineService := service.NewMedicineService(medicineRepo)
	productService := service.NewProductService(productRepo)
	landService := service.NewLandService(landRepo, userRepo)
	weatherService := service.NewWeatherService(redisClient)
	cropService := service.NewCropService()
	adminService := service.NewAdminService(adminRepo, userRepo, diseaseRepo, medicineRepo, productRepo)

	// Router
	r := gin.Default()

	authHandler := routes.NewAuthHandler(authService, userRepo)
	authHandler.SetupAuthRoutes(r)

	routes.DiseaseRoutes(r, diseaseService)
	routes.MedicineRoutes(r, medicineService)
	routes.ProductRoutes(r, productService)
	routes.LandRoutes(r, landService)
	routes.WeatherRoutes(r, weatherService)
	routes.CropRoutes(r, cropService)
	routes.AdminRoutes(r, adminService)

	// Uploaded case images are served directly.
	r.Static("/uploads", "./"+utils.UploadDir)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Crop Disease Advisory API RUNNING",
			"version": "1.0.0",
		})
	})

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running at http://localhost:" + port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
