package repository

import (
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the principal store contract used by auth and by
// the services that resolve display fields on documents.
type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	// FindByIDs batch-resolves principals for populated responses.
	// Unknown ids are simply absent from the result.
	FindByIDs(ids []uuid.UUID) (map[uuid.UUID]model.User, error)
	FindRoleByName(name string) (*model.Role, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds the GORM-backed principal store.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.
		Preload("Role").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.
		Preload("Role").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]model.User, error) {
	out := make(map[uuid.UUID]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []model.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *userRepository) FindRoleByName(name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}
