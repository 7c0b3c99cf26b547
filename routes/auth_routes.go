package routes

import (
	"net/http"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/repository"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/service"
	"github.com/hridayesh-25/CropDiseaseAdvisory/middleware"
	"github.com/hridayesh-25/CropDiseaseAdvisory/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler owns the authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	userRepo    repository.UserRepository
}

func NewAuthHandler(authService service.AuthService, userRepo repository.UserRepository) *AuthHandler {
	return &AuthHandler{authService: authService, userRepo: userRepo}
}

// SetupAuthRoutes registers the /api/auth endpoints.
func (h *AuthHandler) SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", middleware.AuthMiddleware(), h.Me)
	}
}

// Register creates a new principal. The public endpoint only hands
// out the user and specialist roles; admins are seeded or promoted by
// an existing admin.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role"`
		Phone    string `json:"phone"`
		Location string `json:"location"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid registration payload", err.Error(), nil))
		return
	}

	role := input.Role
	if role == "" {
		role = string(authz.RoleUser)
	}
	if role != string(authz.RoleUser) && role != string(authz.RoleSpecialist) {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Role not available for registration", role, nil))
		return
	}

	newUser := model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.Password, // hashed inside the service
		Phone:        input.Phone,
		Location:     input.Location,
		IsActive:     true,
	}

	if err := h.authService.Register(&newUser, role); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Registration failed", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Registration successful", nil))
}

// Login checks credentials and issues the access token.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Invalid login payload", err.Error(), nil))
		return
	}

	user, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Login failed", err.Error(), nil))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role.Name)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Failed to issue token", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Login successful", gin.H{
			"token": token,
			"user": gin.H{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role.Name,
			},
		}))
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, ok := middleware.PrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Authentication required", "no_user_id", nil))
		return
	}

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("User not found", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Profile fetched", user))
}
