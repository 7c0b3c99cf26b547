package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/utils"

	"github.com/gin-gonic/gin"
)

// CropService serves the season/location advisory tables.
type CropService interface {
	GetRecommendations(ctx *gin.Context)
	GetByLocation(ctx *gin.Context)
}

type cropService struct{}

func NewCropService() CropService {
	return &cropService{}
}

// cropRecommendations maps climate zone x season to suggested crops.
var cropRecommendations = map[string]map[string][]string{
	"tropical": {
		"summer":  {"Rice", "Maize", "Cotton", "Sugarcane", "Banana"},
		"winter":  {"Wheat", "Potato", "Tomato", "Onion", "Carrot"},
		"monsoon": {"Rice", "Soybean", "Groundnut", "Pulses"},
	},
	"temperate": {
		"summer": {"Corn", "Soybean", "Sunflower", "Tomato"},
		"winter": {"Wheat", "Barley", "Oats", "Potato"},
		"spring": {"Peas", "Lettuce", "Carrots", "Radish"},
	},
	"arid": {
		"summer": {"Millet", "Sorghum", "Cotton"},
		"winter": {"Wheat", "Barley", "Mustard"},
	},
}

// locationCrops maps known states to their staple crops.
var locationCrops = map[string][]string{
	"punjab":      {"Wheat", "Rice", "Cotton", "Sugarcane"},
	"maharashtra": {"Sugarcane", "Cotton", "Soybean", "Turmeric"},
	"karnataka":   {"Coffee", "Rice", "Ragi", "Sugarcane"},
	"tamil nadu":  {"Rice", "Sugarcane", "Cotton", "Groundnut"},
}

var defaultCrops = []string{"Rice", "Wheat", "Maize", "Pulses"}

// climateZoneFor infers a coarse climate zone from location keywords.
func climateZoneFor(location string) string {
	lower := strings.ToLower(location)
	switch {
	case strings.Contains(lower, "north") || strings.Contains(lower, "cold"):
		return "temperate"
	case strings.Contains(lower, "desert") || strings.Contains(lower, "arid"):
		return "arid"
	default:
		return "tropical"
	}
}

// seasonFor maps a month onto the advisory seasons: Nov-Feb winter,
// Jun-Sep monsoon, everything else summer.
func seasonFor(month time.Month) string {
	switch {
	case month >= time.November || month <= time.February:
		return "winter"
	case month >= time.June && month <= time.September:
		return "monsoon"
	default:
		return "summer"
	}
}

// GET /api/crops/recommendations
func (s *cropService) GetRecommendations(ctx *gin.Context) {
	location := ctx.Query("location")
	season := ctx.Query("season")

	climateZone := climateZoneFor(location)

	now := time.Now()
	if season == "" {
		season = seasonFor(now.Month())
	}

	recommendations := cropRecommendations[climateZone][season]
	if recommendations == nil {
		recommendations = cropRecommendations[climateZone]["summer"]
	}
	if recommendations == nil {
		recommendations = []string{"Rice", "Wheat", "Maize"}
	}

	displayLocation := location
	if displayLocation == "" {
		displayLocation = "Unknown"
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Crop recommendations fetched", gin.H{
			"location":         displayLocation,
			"climateZone":      climateZone,
			"season":           season,
			"recommendedCrops": recommendations,
			"currentMonth":     int(now.Month()),
		}))
}

// GET /api/crops/by-location
func (s *cropService) GetByLocation(ctx *gin.Context) {
	city := ctx.Query("city")
	state := ctx.Query("state")
	country := ctx.Query("country")

	key := strings.ToLower(state)
	if key == "" {
		key = strings.ToLower(city)
	}

	crops, ok := locationCrops[key]
	if !ok {
		crops = defaultCrops
	}

	displayLocation := city
	if displayLocation == "" {
		displayLocation = state
	}
	if displayLocation == "" {
		displayLocation = country
	}
	if displayLocation == "" {
		displayLocation = "Unknown"
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Best crops fetched", gin.H{
			"location":         displayLocation,
			"bestCrops":        crops,
			"soilType":         "Alluvial",
			"waterRequirement": "Moderate",
		}))
}
