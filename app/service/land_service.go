package service

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/repository"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"
	"github.com/hridayesh-25/CropDiseaseAdvisory/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LandService is the farmland leasing surface: public browsing,
// owner listings and the lease transition.
type LandService interface {
	GetLands(ctx *gin.Context)
	GetMyLands(ctx *gin.Context)
	GetLand(ctx *gin.Context)
	CreateLand(ctx *gin.Context)
	LeaseLand(ctx *gin.Context)
	UpdateLand(ctx *gin.Context)
	DeleteLand(ctx *gin.Context)
}

type landService struct {
	landRepo repository.LandRepository
	userRepo repository.UserRepository
}

func NewLandService(landRepo repository.LandRepository, userRepo repository.UserRepository) LandService {
	return &landService{landRepo: landRepo, userRepo: userRepo}
}

// LandContactRef is the owner/lessee projection on land responses.
type LandContactRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

// LandView is a listing with its principals resolved.
type LandView struct {
	model.CropLand
	OwnerInfo    *LandContactRef `json:"ownerInfo,omitempty"`
	LeasedToInfo *LandContactRef `json:"leasedToInfo,omitempty"`
}

// GET /api/lands
func (s *landService) GetLands(ctx *gin.Context) {
	filter := repository.LandFilter{
		Status: ctx.Query("status"),
		City:   ctx.Query("city"),
		State:  ctx.Query("state"),
	}
	if filter.Status == "" {
		filter.Status = model.LandStatusAvailable
	}
	if v := ctx.Query("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := ctx.Query("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}

	lands, err := s.landRepo.Find(ctx.Request.Context(), filter)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch lands", err.Error(), nil))
		return
	}

	s.respondWithLands(ctx, "Lands fetched", lands, false)
}

// GET /api/lands/my-lands
func (s *landService) GetMyLands(ctx *gin.Context) {
	userID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}

	lands, err := s.landRepo.FindByOwner(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch lands", err.Error(), nil))
		return
	}

	s.respondWithLands(ctx, "Lands fetched", lands, false)
}

// GET /api/lands/:id
func (s *landService) GetLand(ctx *gin.Context) {
	land, ok := s.findLand(ctx)
	if !ok {
		return
	}
	s.respondWithLands(ctx, "Land fetched", []model.CropLand{*land}, true)
}

type landInput struct {
	Title         string             `json:"title" binding:"required"`
	Description   string             `json:"description" binding:"required"`
	Location      model.LandLocation `json:"location"`
	Area          model.LandArea     `json:"area"`
	Price         float64            `json:"price" binding:"required,gt=0"`
	PriceUnit     string             `json:"priceUnit"`
	SuitableCrops []string           `json:"suitableCrops"`
	SoilType      string             `json:"soilType"`
	WaterSource   string             `json:"waterSource"`
	Images        []string           `json:"images"`
}

// POST /api/lands
func (s *landService) CreateLand(ctx *gin.Context) {
	userID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}

	var input landInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid land payload", err.Error(), nil))
		return
	}

	land := &model.CropLand{
		Owner:         userID,
		Title:         input.Title,
		Description:   input.Description,
		Location:      input.Location,
		Area:          input.Area,
		Price:         input.Price,
		PriceUnit:     input.PriceUnit,
		SuitableCrops: input.SuitableCrops,
		SoilType:      input.SoilType,
		WaterSource:   input.WaterSource,
		Images:        input.Images,
		Status:        model.LandStatusAvailable,
		CreatedAt:     time.Now(),
	}

	if err := s.landRepo.Create(ctx.Request.Context(), land); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to create land listing", err.Error(), nil))
		return
	}

	views, err := s.buildViews(ctx, []model.CropLand{*land})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to resolve land references", err.Error(), nil))
		return
	}
	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Land listed", views[0]))
}

type leaseInput struct {
	LeaseStartDate *time.Time `json:"leaseStartDate"`
	LeaseEndDate   *time.Time `json:"leaseEndDate"`
}

// PUT /api/lands/:id/lease
func (s *landService) LeaseLand(ctx *gin.Context) {
	userID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}

	var input leaseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid lease payload", err.Error(), nil))
		return
	}

	land, ok := s.findLand(ctx)
	if !ok {
		return
	}

	if land.Status != model.LandStatusAvailable {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Land is not available", land.Status, nil))
		return
	}

	start := time.Now()
	if input.LeaseStartDate != nil {
		start = *input.LeaseStartDate
	}

	land.Status = model.LandStatusLeased
	land.LeasedTo = &userID
	land.LeaseStartDate = &start
	land.LeaseEndDate = input.LeaseEndDate

	if err := s.landRepo.Replace(ctx.Request.Context(), land); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to lease land", err.Error(), nil))
		return
	}

	s.respondWithLands(ctx, "Land leased", []model.CropLand{*land}, true)
}

type landPatch struct {
	Title         *string             `json:"title"`
	Description   *string             `json:"description"`
	Location      *model.LandLocation `json:"location"`
	Area          *model.LandArea     `json:"area"`
	Price         *float64            `json:"price"`
	PriceUnit     *string             `json:"priceUnit"`
	SuitableCrops []string            `json:"suitableCrops"`
	SoilType      *string             `json:"soilType"`
	WaterSource   *string             `json:"waterSource"`
	Images        []string            `json:"images"`
	Status        *string             `json:"status"`
}

// PUT /api/lands/:id
func (s *landService) UpdateLand(ctx *gin.Context) {
	land, ok := s.authorizedLandMutation(ctx)
	if !ok {
		return
	}

	var patch landPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid land payload", err.Error(), nil))
		return
	}

	if patch.Title != nil {
		land.Title = *patch.Title
	}
	if patch.Description != nil {
		land.Description = *patch.Description
	}
	if patch.Location != nil {
		land.Location = *patch.Location
	}
	if patch.Area != nil {
		land.Area = *patch.Area
	}
	if patch.Price != nil {
		land.Price = *patch.Price
	}
	if patch.PriceUnit != nil {
		land.PriceUnit = *patch.PriceUnit
	}
	if patch.SuitableCrops != nil {
		land.SuitableCrops = patch.SuitableCrops
	}
	if patch.SoilType != nil {
		land.SoilType = *patch.SoilType
	}
	if patch.WaterSource != nil {
		land.WaterSource = *patch.WaterSource
	}
	if patch.Images != nil {
		land.Images = patch.Images
	}
	if patch.Status != nil {
		land.Status = *patch.Status
	}

	if err := s.landRepo.Replace(ctx.Request.Context(), land); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to update land", err.Error(), nil))
		return
	}

	s.respondWithLands(ctx, "Land updated", []model.CropLand{*land}, true)
}

// DELETE /api/lands/:id
func (s *landService) DeleteLand(ctx *gin.Context) {
	land, ok := s.authorizedLandMutation(ctx)
	if !ok {
		return
	}

	if err := s.landRepo.Delete(ctx.Request.Context(), land.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to delete land", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Land deleted", nil))
}

// findLand parses :id and loads the listing, answering 400/404 itself.
func (s *landService) findLand(ctx *gin.Context) (*model.CropLand, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid land id", err.Error(), nil))
		return nil, false
	}

	land, err := s.landRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Land not found", "not_found", nil))
			return nil, false
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch land", err.Error(), nil))
		return nil, false
	}

	return land, true
}

// authorizedLandMutation loads the listing and enforces the
// owner-or-admin rule for edits and deletion.
func (s *landService) authorizedLandMutation(ctx *gin.Context) (*model.CropLand, bool) {
	userID, _ := middleware.PrincipalID(ctx)
	role := authz.Role(ctx.GetString("role"))

	land, ok := s.findLand(ctx)
	if !ok {
		return nil, false
	}

	if !authz.Can(role, authz.OpLandMutate, land.Owner == userID) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Access denied", "forbidden", nil))
		return nil, false
	}

	return land, true
}

func (s *landService) respondWithLands(ctx *gin.Context, message string, lands []model.CropLand, single bool) {
	views, err := s.buildViews(ctx, lands)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to resolve land references", err.Error(), nil))
		return
	}

	if single {
		ctx.JSON(http.StatusOK, utils.BuildResponseSuccess(message, views[0]))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess(message, views))
}

func (s *landService) buildViews(ctx *gin.Context, lands []model.CropLand) ([]LandView, error) {
	ids := make([]uuid.UUID, 0, len(lands)*2)
	seen := map[uuid.UUID]bool{}
	for _, l := range lands {
		if !seen[l.Owner] {
			seen[l.Owner] = true
			ids = append(ids, l.Owner)
		}
		if l.LeasedTo != nil && !seen[*l.LeasedTo] {
			seen[*l.LeasedTo] = true
			ids = append(ids, *l.LeasedTo)
		}
	}

	principals, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	ref := func(id uuid.UUID) *LandContactRef {
		if u, ok := principals[id]; ok {
			return &LandContactRef{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
		}
		return &LandContactRef{ID: id}
	}

	views := make([]LandView, 0, len(lands))
	for _, l := range lands {
		v := LandView{CropLand: l, OwnerInfo: ref(l.Owner)}
		if l.LeasedTo != nil {
			v.LeasedToInfo = ref(*l.LeasedTo)
		}
		views = append(views, v)
	}
	return views, nil
}
