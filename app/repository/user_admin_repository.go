package repository

import (
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserAdminRepository backs the admin user-management endpoints.
type UserAdminRepository interface {
	FindAllUsers() ([]model.User, error)
	FindUserByID(id uuid.UUID) (*model.User, error)
	UpdateUserRole(id uuid.UUID, roleID uuid.UUID) error
	DeleteUser(id uuid.UUID) error
	CountUsersByRole() (map[string]int64, error)
}

type userAdminRepository struct {
	db *gorm.DB
}

func NewUserAdminRepository(db *gorm.DB) UserAdminRepository {
	return &userAdminRepository{db}
}

func (r *userAdminRepository) FindAllUsers() ([]model.User, error) {
	var users []model.User
	err := r.db.
		Preload("Role").
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *userAdminRepository) FindUserByID(id uuid.UUID) (*model.User, error) {
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

func (r *userAdminRepository) UpdateUserRole(id uuid.UUID, roleID uuid.UUID) error {
	res := r.db.Model(&model.User{}).
		Where("id = ?", id).
		Update("role_id", roleID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userAdminRepository) DeleteUser(id uuid.UUID) error {
	res := r.db.Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userAdminRepository) CountUsersByRole() (map[string]int64, error) {
	type row struct {
		Name  string
		Count int64
	}
	var rows []row
	err := r.db.Model(&model.User{}).
		Select("roles.name AS name, COUNT(users.id) AS count").
		Joins("JOIN roles ON roles.id = users.role_id").
		Group("roles.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Name] = r.Count
	}
	return counts, nil
}
