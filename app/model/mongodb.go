package model

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Disease statuses. A case starts pending and moves to reviewed,
// approved or rejected through specialist action. reviewed is not
// terminal: a reviewed case can still be approved or rejected later.
const (
	DiseaseStatusPending  = "pending"
	DiseaseStatusReviewed = "reviewed"
	DiseaseStatusApproved = "approved"
	DiseaseStatusRejected = "rejected"
)

// ValidDiseaseStatuses is the closed set accepted on review.
var ValidDiseaseStatuses = map[string]bool{
	DiseaseStatusPending:  true,
	DiseaseStatusReviewed: true,
	DiseaseStatusApproved: true,
	DiseaseStatusRejected: true,
}

// Disease is one farmer-submitted disease report (collection: diseases).
// Invariant: status == pending exactly while Specialist and ReviewedAt
// are nil; once any review action happens, both are set and later
// transitions update them without ever clearing them.
type Disease struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	User             uuid.UUID            `bson:"user" json:"user"`
	CropType         string               `bson:"cropType" json:"cropType"`
	DiseaseName      string               `bson:"diseaseName" json:"diseaseName"`
	Image            string               `bson:"image" json:"image"`
	Description      string               `bson:"description" json:"description"`
	Status           string               `bson:"status" json:"status"`
	PredictedDisease string               `bson:"predictedDisease" json:"predictedDisease"`
	Confidence       float64              `bson:"confidence" json:"confidence"`
	Specialist       *uuid.UUID           `bson:"specialist,omitempty" json:"specialist,omitempty"`
	SpecialistNotes  string               `bson:"specialistNotes" json:"specialistNotes"`
	Medicines        []primitive.ObjectID `bson:"medicines" json:"medicines"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	ReviewedAt       *time.Time           `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
}

// Medicine statuses. Specialist-created medicines start pending and
// need approval; admin-created medicines are approved immediately.
const (
	MedicineStatusPending  = "pending"
	MedicineStatusApproved = "approved"
	MedicineStatusRejected = "rejected"
)

var ValidMedicineStatuses = map[string]bool{
	MedicineStatusPending:  true,
	MedicineStatusApproved: true,
	MedicineStatusRejected: true,
}

// Medicine price categories.
const (
	PriceCategoryLow    = "low"
	PriceCategoryMedium = "medium"
	PriceCategoryHigh   = "high"
)

var ValidPriceCategories = map[string]bool{
	PriceCategoryLow:    true,
	PriceCategoryMedium: true,
	PriceCategoryHigh:   true,
}

// Medicine is one catalog entry (collection: medicines). Disease and
// CropType are text match keys, not references: cases are matched to
// medicines by case-insensitive substring, never by id.
type Medicine struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Disease       string             `bson:"disease" json:"disease"`
	CropType      string             `bson:"cropType" json:"cropType"`
	PriceCategory string             `bson:"priceCategory" json:"priceCategory"`
	Price         float64            `bson:"price" json:"price"`
	Description   string             `bson:"description" json:"description"`
	Dosage        string             `bson:"dosage" json:"dosage"`
	Manufacturer  string             `bson:"manufacturer" json:"manufacturer"`
	Image         string             `bson:"image" json:"image"`
	Effectiveness int                `bson:"effectiveness" json:"effectiveness"`
	ApprovedBy    *uuid.UUID         `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// Product is one marketplace listing (collection: products).
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Rating      float64            `bson:"rating" json:"rating"`
	Image       string             `bson:"image" json:"image"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

var ValidProductCategories = map[string]bool{
	"fertilizer": true,
	"pesticide":  true,
	"seed":       true,
	"equipment":  true,
}

// CropLand statuses.
const (
	LandStatusAvailable = "available"
	LandStatusLeased    = "leased"
	LandStatusSold      = "sold"
)

// LandLocation is the nested location block of a land listing.
type LandLocation struct {
	Address     string          `bson:"address" json:"address"`
	City        string          `bson:"city" json:"city"`
	State       string          `bson:"state" json:"state"`
	Country     string          `bson:"country" json:"country"`
	Coordinates LandCoordinates `bson:"coordinates" json:"coordinates"`
}

type LandCoordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type LandArea struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit" json:"unit"`
}

// CropLand is one farmland listing offered for lease (collection: lands).
type CropLand struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner          uuid.UUID          `bson:"owner" json:"owner"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Location       LandLocation       `bson:"location" json:"location"`
	Area           LandArea           `bson:"area" json:"area"`
	Price          float64            `bson:"price" json:"price"`
	PriceUnit      string             `bson:"priceUnit" json:"priceUnit"`
	SuitableCrops  []string           `bson:"suitableCrops" json:"suitableCrops"`
	SoilType       string             `bson:"soilType" json:"soilType"`
	WaterSource    string             `bson:"waterSource" json:"waterSource"`
	Images         []string           `bson:"images" json:"images"`
	Status         string             `bson:"status" json:"status"`
	LeasedTo       *uuid.UUID         `bson:"leasedTo,omitempty" json:"leasedTo,omitempty"`
	LeaseStartDate *time.Time         `bson:"leaseStartDate,omitempty" json:"leaseStartDate,omitempty"`
	LeaseEndDate   *time.Time         `bson:"leaseEndDate,omitempty" json:"leaseEndDate,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
