package service

import (
	"errors"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnknownRole        = errors.New("unknown role")
)

// AuthService handles registration and credential checks. Token
// issuance stays in the handler, mirroring how login responses are
// assembled there.
type AuthService interface {
	Register(user *model.User, roleName string) error
	Login(email, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register hashes the raw password carried in PasswordHash, resolves
// the requested role by name and stores the principal.
func (s *authService) Register(user *model.User, roleName string) error {
	role, err := s.userRepo.FindRoleByName(roleName)
	if err != nil {
		return ErrUnknownRole
	}
	user.RoleID = role.ID

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)

	return s.userRepo.Create(user)
}

// Login verifies email+password and returns the active principal.
func (s *authService) Login(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return user, nil
}
