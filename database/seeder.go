package database

import (
	"context"
	"log"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders fills empty tables and collections with the baseline
// data the platform needs. Call once in main.go after InitDB.
func RunSeeders(db *Database) {
	SeedRoles(db.Postgres)
	SeedUsers(db.Postgres)
	SeedMedicines(db.Mongo)
	SeedProducts(db.Mongo)
}

// SeedRoles adds the three platform roles: user, specialist, admin.
func SeedRoles(db *gorm.DB) {
	var count int64
	db.Model(&model.Role{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Roles already present, skipping.")
		return
	}

	roles := []model.Role{
		{ID: uuid.New(), Name: "user", Description: "Farmer submitting disease cases"},
		{ID: uuid.New(), Name: "specialist", Description: "Agronomist reviewing disease cases"},
		{ID: uuid.New(), Name: "admin", Description: "Platform administrator"},
	}

	if err := db.Create(&roles).Error; err != nil {
		log.Fatalf("[SEEDER] Failed to seed roles: %v", err)
	}

	log.Println("[SEEDER] Seeded roles: user, specialist, admin")
}

// SeedUsers creates one admin and one specialist so the review and
// approval endpoints are usable on a fresh database.
func SeedUsers(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Users already present, skipping.")
		return
	}

	var adminRole, specialistRole model.Role
	db.Where("name = ?", "admin").First(&adminRole)
	db.Where("name = ?", "specialist").First(&specialistRole)

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), 10)

	now := time.Now()

	users := []model.User{
		{
			ID:           uuid.New(),
			Name:         "Platform Admin",
			Email:        "admin@cropadvisory.com",
			PasswordHash: string(hash),
			RoleID:       adminRole.ID,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.New(),
			Name:         "Dr. Anita Deshmukh",
			Email:        "specialist@cropadvisory.com",
			PasswordHash: string(hash),
			Phone:        "9876543210",
			Location:     "Maharashtra",
			RoleID:       specialistRole.ID,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("[SEEDER] Failed to seed users: %v", err)
	}

	log.Println("[SEEDER] Seeded admin and specialist accounts, password: admin123")
}

// SeedMedicines loads the approved treatment catalog used by
// automatic medicine selection.
func SeedMedicines(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	col := db.Collection("medicines")

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("[SEEDER] Failed to count medicines: %v", err)
	}
	if count > 0 {
		log.Println("[SEEDER] Medicines already present, skipping.")
		return
	}

	now := time.Now()

	medicine := func(name, disease, cropType, priceCategory string, price float64, description, dosage, manufacturer string, effectiveness int) model.Medicine {
		return model.Medicine{
			Name:          name,
			Disease:       disease,
			CropType:      cropType,
			PriceCategory: priceCategory,
			Price:         price,
			Description:   description,
			Dosage:        dosage,
			Manufacturer:  manufacturer,
			Effectiveness: effectiveness,
			Status:        model.MedicineStatusApproved,
			CreatedAt:     now,
		}
	}

	medicines := []interface{}{
		medicine("Bavistin", "Leaf Spot", "Rice", model.PriceCategoryLow, 120,
			"Systemic fungicide effective against leaf spot diseases",
			"2g per liter of water", "BASF", 75),
		medicine("Mancozeb 75% WP", "Leaf Spot", "Rice", model.PriceCategoryMedium, 250,
			"Broad spectrum contact fungicide", "2.5g per liter of water", "UPL", 82),
		medicine("Propiconazole 25% EC", "Leaf Spot", "Rice", model.PriceCategoryHigh, 480,
			"Premium systemic fungicide with long lasting protection",
			"1ml per liter of water", "Syngenta", 92),
		medicine("Sulfur 80% WP", "Powdery Mildew", "Wheat", model.PriceCategoryLow, 90,
			"Contact fungicide for powdery mildew control", "3g per liter of water", "Coromandel", 70),
		medicine("Tebuconazole 25.9% EC", "Powdery Mildew", "Wheat", model.PriceCategoryMedium, 320,
			"Systemic fungicide for mildew and rust", "1.5ml per liter of water", "Bayer", 85),
		medicine("Azoxystrobin 23% SC", "Powdery Mildew", "Wheat", model.PriceCategoryHigh, 650,
			"Strobilurin fungicide with preventive and curative action",
			"1ml per liter of water", "Syngenta", 94),
		medicine("Copper Oxychloride 50% WP", "Blight", "Tomato", model.PriceCategoryLow, 140,
			"Copper based protectant fungicide", "3g per liter of water", "NACL", 72),
		medicine("Chlorothalonil 75% WP", "Blight", "Tomato", model.PriceCategoryMedium, 380,
			"Multi-site contact fungicide for blight", "2g per liter of water", "Tata Rallis", 84),
		medicine("Metalaxyl + Mancozeb", "Blight", "Tomato", model.PriceCategoryHigh, 560,
			"Combination fungicide for late blight control", "2.5g per liter of water", "Corteva", 90),
		medicine("Rust Control Basic", "Rust Disease", "Wheat", model.PriceCategoryLow, 110,
			"Entry level rust treatment", "2g per liter of water", "IFFCO", 68),
		medicine("Triadimefon 25% WP", "Rust Disease", "Wheat", model.PriceCategoryMedium, 290,
			"Systemic fungicide for all rust stages", "1g per liter of water", "Bayer", 86),
	}

	if _, err := col.InsertMany(ctx, medicines); err != nil {
		log.Fatalf("[SEEDER] Failed to seed medicines: %v", err)
	}

	log.Printf("[SEEDER] Seeded %d approved medicines", len(medicines))
}

// SeedProducts loads a starter marketplace catalog.
func SeedProducts(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	col := db.Collection("products")

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("[SEEDER] Failed to count products: %v", err)
	}
	if count > 0 {
		log.Println("[SEEDER] Products already present, skipping.")
		return
	}

	now := time.Now()

	products := []interface{}{
		model.Product{
			Name:        "Hybrid Tomato Seeds",
			Category:    "seed",
			Price:       450,
			Description: "Disease resistant hybrid tomato seeds, 100g pack",
			Stock:       200,
			CreatedAt:   now,
		},
		model.Product{
			Name:        "Urea Fertilizer",
			Category:    "fertilizer",
			Price:       280,
			Description: "Nitrogen rich urea fertilizer, 45kg bag",
			Stock:       150,
			CreatedAt:   now,
		},
		model.Product{
			Name:        "Knapsack Sprayer 16L",
			Category:    "equipment",
			Price:       1850,
			Description: "Manual knapsack sprayer for pesticide application",
			Stock:       40,
			CreatedAt:   now,
		},
		model.Product{
			Name:        "Neem Oil Concentrate",
			Category:    "pesticide",
			Price:       320,
			Description: "Organic pest control, 1 liter bottle",
			Stock:       90,
			CreatedAt:   now,
		},
	}

	if _, err := col.InsertMany(ctx, products); err != nil {
		log.Fatalf("[SEEDER] Failed to seed products: %v", err)
	}

	log.Printf("[SEEDER] Seeded %d products", len(products))
}
