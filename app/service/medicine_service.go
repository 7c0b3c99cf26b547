package service

import (
	"errors"
	"net/http"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/repository"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"
	"github.com/hridayesh-25/CropDiseaseAdvisory/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MedicineService exposes the medicine catalog: filtered listing,
// creation, patching and the approve/reject/delete transitions.
type MedicineService interface {
	GetMedicines(ctx *gin.Context)
	GetMedicine(ctx *gin.Context)
	CreateMedicine(ctx *gin.Context)
	UpdateMedicine(ctx *gin.Context)
	ApproveMedicine(ctx *gin.Context)
	DeleteMedicine(ctx *gin.Context)
}

type medicineService struct {
	medicineRepo repository.MedicineRepository
}

func NewMedicineService(medicineRepo repository.MedicineRepository) MedicineService {
	return &medicineService{medicineRepo: medicineRepo}
}

// GET /api/medicines
func (s *medicineService) GetMedicines(ctx *gin.Context) {
	filter := repository.MedicineFilter{
		Disease:       ctx.Query("disease"),
		CropType:      ctx.Query("cropType"),
		PriceCategory: ctx.Query("priceCategory"),
		Status:        ctx.Query("status"),
	}

	medicines, err := s.medicineRepo.Find(ctx.Request.Context(), filter)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch medicines", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Medicines fetched", medicines))
}

// GET /api/medicines/:id
func (s *medicineService) GetMedicine(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid medicine id", err.Error(), nil))
		return
	}

	medicine, err := s.medicineRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Medicine not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch medicine", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Medicine fetched", medicine))
}

type medicineInput struct {
	Name          string  `json:"name" binding:"required"`
	Disease       string  `json:"disease" binding:"required"`
	CropType      string  `json:"cropType" binding:"required"`
	PriceCategory string  `json:"priceCategory" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Description   string  `json:"description" binding:"required"`
	Dosage        string  `json:"dosage" binding:"required"`
	Manufacturer  string  `json:"manufacturer"`
	Image         string  `json:"image"`
	Effectiveness int     `json:"effectiveness" binding:"omitempty,min=0,max=100"`
}

// POST /api/medicines
func (s *medicineService) CreateMedicine(ctx *gin.Context) {
	creatorID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}
	role := authz.Role(ctx.GetString("role"))

	var input medicineInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid medicine payload", err.Error(), nil))
		return
	}

	if !model.ValidPriceCategories[input.PriceCategory] {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid price category", input.PriceCategory, nil))
		return
	}

	// Admin-created medicines skip the approval queue.
	status := model.MedicineStatusPending
	if role == authz.RoleAdmin {
		status = model.MedicineStatusApproved
	}

	medicine := &model.Medicine{
		Name:          input.Name,
		Disease:       input.Disease,
		CropType:      input.CropType,
		PriceCategory: input.PriceCategory,
		Price:         input.Price,
		Description:   input.Description,
		Dosage:        input.Dosage,
		Manufacturer:  input.Manufacturer,
		Image:         input.Image,
		Effectiveness: input.Effectiveness,
		ApprovedBy:    &creatorID,
		Status:        status,
		CreatedAt:     time.Now(),
	}

	if err := s.medicineRepo.Create(ctx.Request.Context(), medicine); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to create medicine", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Medicine created", medicine))
}

type medicinePatch struct {
	Name          *string  `json:"name"`
	Disease       *string  `json:"disease"`
	CropType      *string  `json:"cropType"`
	PriceCategory *string  `json:"priceCategory"`
	Price         *float64 `json:"price"`
	Description   *string  `json:"description"`
	Dosage        *string  `json:"dosage"`
	Manufacturer  *string  `json:"manufacturer"`
	Image         *string  `json:"image"`
	Effectiveness *int     `json:"effectiveness"`
	Status        *string  `json:"status"`
}

// PUT /api/medicines/:id
func (s *medicineService) UpdateMedicine(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid medicine id", err.Error(), nil))
		return
	}

	var patch medicinePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid medicine payload", err.Error(), nil))
		return
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Disease != nil {
		set["disease"] = *patch.Disease
	}
	if patch.CropType != nil {
		set["cropType"] = *patch.CropType
	}
	if patch.PriceCategory != nil {
		if !model.ValidPriceCategories[*patch.PriceCategory] {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Invalid price category", *patch.PriceCategory, nil))
			return
		}
		set["priceCategory"] = *patch.PriceCategory
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Price must be positive", *patch.Price, nil))
			return
		}
		set["price"] = *patch.Price
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Dosage != nil {
		set["dosage"] = *patch.Dosage
	}
	if patch.Manufacturer != nil {
		set["manufacturer"] = *patch.Manufacturer
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Effectiveness != nil {
		if *patch.Effectiveness < 0 || *patch.Effectiveness > 100 {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Effectiveness must be 0-100", *patch.Effectiveness, nil))
			return
		}
		set["effectiveness"] = *patch.Effectiveness
	}
	if patch.Status != nil {
		if !model.ValidMedicineStatuses[*patch.Status] {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Invalid medicine status", *patch.Status, nil))
			return
		}
		set["status"] = *patch.Status
	}

	if len(set) == 0 {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("No fields to update", "empty_patch", nil))
		return
	}

	medicine, err := s.medicineRepo.Update(ctx.Request.Context(), id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Medicine not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to update medicine", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Medicine updated", medicine))
}

// PUT /api/medicines/:id/approve
func (s *medicineService) ApproveMedicine(ctx *gin.Context) {
	approverID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid medicine id", err.Error(), nil))
		return
	}

	medicine, err := s.medicineRepo.Update(ctx.Request.Context(), id, bson.M{
		"status":     model.MedicineStatusApproved,
		"approvedBy": approverID,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Medicine not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to approve medicine", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Medicine approved", medicine))
}

// DELETE /api/medicines/:id
func (s *medicineService) DeleteMedicine(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid medicine id", err.Error(), nil))
		return
	}

	if err := s.medicineRepo.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Medicine not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to delete medicine", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Medicine deleted", nil))
}
