package service

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/classifier"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/repository"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"
	"github.com/hridayesh-25/CropDiseaseAdvisory/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxAutoSelected caps auto-selection at 9 medicines (3 per price
// category when the catalog is evenly stocked).
const maxAutoSelected = 9

// DiseaseService is the disease case pipeline: farmer submission,
// role-scoped listing, specialist review and approval.
type DiseaseService interface {
	CheckDisease(ctx *gin.Context)
	GetDiseases(ctx *gin.Context)
	GetDisease(ctx *gin.Context)
	ReviewDisease(ctx *gin.Context)
	ApproveDisease(ctx *gin.Context)
}

type diseaseService struct {
	diseaseRepo  repository.DiseaseRepository
	medicineRepo repository.MedicineRepository
	userRepo     repository.UserRepository
	classifier   classifier.Classifier
	strictMatch  bool
}

// NewDiseaseService wires the pipeline. strictMatch narrows
// auto-selection to medicines matching the disease label; the default
// also admits any approved medicine for the crop.
func NewDiseaseService(
	diseaseRepo repository.DiseaseRepository,
	medicineRepo repository.MedicineRepository,
	userRepo repository.UserRepository,
	clf classifier.Classifier,
	strictMatch bool,
) DiseaseService {
	return &diseaseService{
		diseaseRepo:  diseaseRepo,
		medicineRepo: medicineRepo,
		userRepo:     userRepo,
		classifier:   clf,
		strictMatch:  strictMatch,
	}
}

// PrincipalRef is the slim principal view embedded in populated case
// responses: id, name and email only.
type PrincipalRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CaseView is a disease case with its references resolved: owning
// user, reviewing specialist and attached medicine documents.
type CaseView struct {
	ID               primitive.ObjectID `json:"id"`
	User             *PrincipalRef      `json:"user"`
	CropType         string             `json:"cropType"`
	DiseaseName      string             `json:"diseaseName"`
	Image            string             `json:"image"`
	Description      string             `json:"description"`
	Status           string             `json:"status"`
	PredictedDisease string             `json:"predictedDisease"`
	Confidence       float64            `json:"confidence"`
	Specialist       *PrincipalRef      `json:"specialist,omitempty"`
	SpecialistNotes  string             `json:"specialistNotes"`
	Medicines        []model.Medicine   `json:"medicines"`
	CreatedAt        time.Time          `json:"createdAt"`
	ReviewedAt       *time.Time         `json:"reviewedAt,omitempty"`
}

// diseaseScopeFor builds the role-scoped listing filter:
//   - user: only own cases, every status
//   - specialist: the triage queue, pending and reviewed only
//   - admin: unscoped
func diseaseScopeFor(role authz.Role, userID uuid.UUID) bson.M {
	switch role {
	case authz.RoleUser:
		return bson.M{"user": userID}
	case authz.RoleSpecialist:
		return bson.M{"status": bson.M{"$in": []string{
			model.DiseaseStatusPending,
			model.DiseaseStatusReviewed,
		}}}
	default:
		return bson.M{}
	}
}

// rankCandidates orders auto-selection candidates by priceCategory as
// a plain ascending string (so high < low < medium) then price
// ascending, and keeps at most maxAutoSelected ids.
func rankCandidates(cands []model.Medicine) []primitive.ObjectID {
	sorted := make([]model.Medicine, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PriceCategory != sorted[j].PriceCategory {
			return sorted[i].PriceCategory < sorted[j].PriceCategory
		}
		return sorted[i].Price < sorted[j].Price
	})

	if len(sorted) > maxAutoSelected {
		sorted = sorted[:maxAutoSelected]
	}

	ids := make([]primitive.ObjectID, 0, len(sorted))
	for _, m := range sorted {
		ids = append(ids, m.ID)
	}
	return ids
}

// POST /api/diseases/check
func (s *diseaseService) CheckDisease(ctx *gin.Context) {
	userID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}

	cropType := ctx.PostForm("cropType")
	if cropType == "" {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Crop type is required", "missing_crop_type", nil))
		return
	}
	diseaseName := ctx.PostForm("diseaseName")
	description := ctx.PostForm("description")

	imagePath, err := utils.SaveUploadedImage(ctx, "image")
	if err != nil {
		if errors.Is(err, utils.ErrFileTooLarge) || errors.Is(err, utils.ErrBadFileType) {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Image upload rejected", err.Error(), nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to store image", err.Error(), nil))
		return
	}

	prediction := s.classifier.Predict(diseaseName, imagePath)

	name := diseaseName
	if name == "" {
		name = prediction.Label
	}

	disease := &model.Disease{
		User:             userID,
		CropType:         cropType,
		DiseaseName:      name,
		Image:            imagePath,
		Description:      description,
		Status:           model.DiseaseStatusPending,
		PredictedDisease: prediction.Label,
		Confidence:       prediction.Confidence,
		CreatedAt:        time.Now(),
	}

	if err := s.diseaseRepo.Create(ctx.Request.Context(), disease); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to submit disease report", err.Error(), nil))
		return
	}

	// Best-effort approved-medicine lookup returned with the response.
	// Not attached to the case: medicines stay empty until a
	// specialist reviews or approves.
	medicines, err := s.medicineRepo.Find(ctx.Request.Context(), repository.MedicineFilter{
		Disease:  prediction.Label,
		CropType: cropType,
		Status:   model.MedicineStatusApproved,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to look up medicines", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Disease submitted for specialist review", gin.H{
			"disease":   disease,
			"medicines": medicines,
		}))
}

// GET /api/diseases
func (s *diseaseService) GetDiseases(ctx *gin.Context) {
	userID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}
	role := authz.Role(ctx.GetString("role"))

	diseases, err := s.diseaseRepo.Find(ctx.Request.Context(), diseaseScopeFor(role, userID))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch disease cases", err.Error(), nil))
		return
	}

	views, err := s.populate(ctx, diseases)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to resolve case references", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Disease cases fetched", views))
}

// GET /api/diseases/:id
func (s *diseaseService) GetDisease(ctx *gin.Context) {
	userID, _ := middleware.PrincipalID(ctx)
	role := authz.Role(ctx.GetString("role"))

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid case id", err.Error(), nil))
		return
	}

	disease, err := s.diseaseRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Disease case not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch disease case", err.Error(), nil))
		return
	}

	if !authz.Can(role, authz.OpDiseaseView, disease.User == userID) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Access denied", "forbidden", nil))
		return
	}

	views, err := s.populate(ctx, []model.Disease{*disease})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to resolve case references", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Disease case fetched", views[0]))
}

type reviewInput struct {
	Status          string   `json:"status"`
	SpecialistNotes string   `json:"specialistNotes"`
	Medicines       []string `json:"medicines"`
	ExpectedStatus  string   `json:"expectedStatus"`
}

// PUT /api/diseases/:id/review
func (s *diseaseService) ReviewDisease(ctx *gin.Context) {
	specialistID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}

	var input reviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid review payload", err.Error(), nil))
		return
	}

	status := input.Status
	if status == "" {
		status = model.DiseaseStatusReviewed
	}
	if !model.ValidDiseaseStatuses[status] {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid case status", status, nil))
		return
	}

	notes := input.SpecialistNotes
	upd := repository.ReviewUpdate{
		Status:     status,
		Specialist: specialistID,
		Notes:      &notes,
		ReviewedAt: time.Now(),
	}
	if input.Medicines != nil {
		ids, err := parseObjectIDs(input.Medicines)
		if err != nil {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Invalid medicine id", err.Error(), nil))
			return
		}
		upd.Medicines = &ids
	}

	s.applyTransition(ctx, upd, input.ExpectedStatus, "Disease case reviewed")
}

type approveInput struct {
	Medicines      []string `json:"medicines"`
	ExpectedStatus string   `json:"expectedStatus"`
}

// PUT /api/diseases/:id/approve
func (s *diseaseService) ApproveDisease(ctx *gin.Context) {
	specialistID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}

	var input approveInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid approve payload", err.Error(), nil))
		return
	}

	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid case id", err.Error(), nil))
		return
	}

	disease, err := s.diseaseRepo.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Disease case not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch disease case", err.Error(), nil))
		return
	}

	var medicineIDs []primitive.ObjectID
	if len(input.Medicines) > 0 {
		medicineIDs, err = parseObjectIDs(input.Medicines)
		if err != nil {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Invalid medicine id", err.Error(), nil))
			return
		}
	} else {
		match := disease.PredictedDisease
		if match == "" {
			match = disease.DiseaseName
		}
		cands, err := s.medicineRepo.FindApprovalCandidates(
			ctx.Request.Context(), match, disease.CropType, s.strictMatch)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Failed to select medicines", err.Error(), nil))
			return
		}
		medicineIDs = rankCandidates(cands)
	}

	upd := repository.ReviewUpdate{
		Status:     model.DiseaseStatusApproved,
		Specialist: specialistID,
		ReviewedAt: time.Now(),
		Medicines:  &medicineIDs,
	}

	s.applyTransition(ctx, upd, input.ExpectedStatus, "Disease case approved")
}

// applyTransition runs the shared tail of review/approve: optional
// status CAS, the update itself, and the populated response.
func (s *diseaseService) applyTransition(ctx *gin.Context, upd repository.ReviewUpdate, expectedStatus, message string) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid case id", err.Error(), nil))
		return
	}

	if expectedStatus != "" && !model.ValidDiseaseStatuses[expectedStatus] {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid expected status", expectedStatus, nil))
		return
	}

	updated, err := s.diseaseRepo.ApplyReview(ctx.Request.Context(), id, upd, expectedStatus)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if expectedStatus != "" {
				// The case exists under a different status, or is
				// gone. Re-check so a plain miss still reads as 404.
				if _, findErr := s.diseaseRepo.FindByID(ctx.Request.Context(), id); findErr == nil {
					ctx.JSON(http.StatusConflict,
						utils.BuildResponseFailed("Case status changed concurrently", "status_conflict", nil))
					return
				}
			}
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("Disease case not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to update disease case", err.Error(), nil))
		return
	}

	views, err := s.populate(ctx, []model.Disease{*updated})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to resolve case references", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildResponseSuccess(message, views[0]))
}

// populate resolves user/specialist display fields and attached
// medicine documents for a batch of cases.
func (s *diseaseService) populate(ctx *gin.Context, diseases []model.Disease) ([]CaseView, error) {
	principalIDs := make([]uuid.UUID, 0, len(diseases)*2)
	medicineIDs := make([]primitive.ObjectID, 0)
	seenPrincipal := map[uuid.UUID]bool{}
	seenMedicine := map[primitive.ObjectID]bool{}

	for _, d := range diseases {
		if !seenPrincipal[d.User] {
			seenPrincipal[d.User] = true
			principalIDs = append(principalIDs, d.User)
		}
		if d.Specialist != nil && !seenPrincipal[*d.Specialist] {
			seenPrincipal[*d.Specialist] = true
			principalIDs = append(principalIDs, *d.Specialist)
		}
		for _, id := range d.Medicines {
			if !seenMedicine[id] {
				seenMedicine[id] = true
				medicineIDs = append(medicineIDs, id)
			}
		}
	}

	principals, err := s.userRepo.FindByIDs(principalIDs)
	if err != nil {
		return nil, err
	}

	medicines, err := s.medicineRepo.FindByIDs(ctx.Request.Context(), medicineIDs)
	if err != nil {
		return nil, err
	}
	medicineByID := make(map[primitive.ObjectID]model.Medicine, len(medicines))
	for _, m := range medicines {
		medicineByID[m.ID] = m
	}

	ref := func(id uuid.UUID) *PrincipalRef {
		if u, ok := principals[id]; ok {
			return &PrincipalRef{ID: u.ID, Name: u.Name, Email: u.Email}
		}
		return &PrincipalRef{ID: id}
	}

	views := make([]CaseView, 0, len(diseases))
	for _, d := range diseases {
		v := CaseView{
			ID:               d.ID,
			User:             ref(d.User),
			CropType:         d.CropType,
			DiseaseName:      d.DiseaseName,
			Image:            d.Image,
			Description:      d.Description,
			Status:           d.Status,
			PredictedDisease: d.PredictedDisease,
			Confidence:       d.Confidence,
			SpecialistNotes:  d.SpecialistNotes,
			Medicines:        []model.Medicine{},
			CreatedAt:        d.CreatedAt,
			ReviewedAt:       d.ReviewedAt,
		}
		if d.Specialist != nil {
			v.Specialist = ref(*d.Specialist)
		}
		for _, id := range d.Medicines {
			if m, ok := medicineByID[id]; ok {
				v.Medicines = append(v.Medicines, m)
			}
		}
		views = append(views, v)
	}
	return views, nil
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
