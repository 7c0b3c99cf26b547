package service

import (
	"errors"
	"net/http"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/repository"
	"github.com/hridayesh-25/CropDiseaseAdvisory/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService is the admin-only user management surface plus the
// dashboard statistics endpoint.
type AdminService interface {
	GetAllUsers(ctx *gin.Context)
	GetUserDetail(ctx *gin.Context)
	UpdateUserRole(ctx *gin.Context)
	DeleteUser(ctx *gin.Context)
	GetStats(ctx *gin.Context)
}

type adminService struct {
	adminRepo    repository.UserAdminRepository
	userRepo     repository.UserRepository
	diseaseRepo  repository.DiseaseRepository
	medicineRepo repository.MedicineRepository
	productRepo  repository.ProductRepository
}

func NewAdminService(
	adminRepo repository.UserAdminRepository,
	userRepo repository.UserRepository,
	diseaseRepo repository.DiseaseRepository,
	medicineRepo repository.MedicineRepository,
	productRepo repository.ProductRepository,
) AdminService {
	return &adminService{
		adminRepo:    adminRepo,
		userRepo:     userRepo,
		diseaseRepo:  diseaseRepo,
		medicineRepo: medicineRepo,
		productRepo:  productRepo,
	}
}

// GET /api/users
func (s *adminService) GetAllUsers(ctx *gin.Context) {
	users, err := s.adminRepo.FindAllUsers()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch users", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Users fetched", users))
}

// GET /api/users/:id
func (s *adminService) GetUserDetail(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid user id", err.Error(), nil))
		return
	}

	user, err := s.adminRepo.FindUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("User not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to fetch user", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("User fetched", user))
}

// PUT /api/users/:id/role
func (s *adminService) UpdateUserRole(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid user id", err.Error(), nil))
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid payload", err.Error(), nil))
		return
	}

	role, err := s.userRepo.FindRoleByName(input.Role)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Unknown role", input.Role, nil))
		return
	}

	if err := s.adminRepo.UpdateUserRole(id, role.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("User not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to update role", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("User role updated", nil))
}

// DELETE /api/users/:id
func (s *adminService) DeleteUser(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid user id", err.Error(), nil))
		return
	}

	if err := s.adminRepo.DeleteUser(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound,
				utils.BuildResponseFailed("User not found", "not_found", nil))
			return
		}
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to delete user", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("User deleted", nil))
}

// GET /api/users/stats
func (s *adminService) GetStats(ctx *gin.Context) {
	roleCounts, err := s.adminRepo.CountUsersByRole()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to compute statistics", err.Error(), nil))
		return
	}

	caseCounts, err := s.diseaseRepo.CountByStatus(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to compute statistics", err.Error(), nil))
		return
	}

	medicineCount, err := s.medicineRepo.Count(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to compute statistics", err.Error(), nil))
		return
	}

	productCount, err := s.productRepo.Count(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to compute statistics", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Statistics computed", gin.H{
			"usersByRole":    roleCounts,
			"casesByStatus":  caseCounts,
			"totalMedicines": medicineCount,
			"totalProducts":  productCount,
		}))
}
