package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a principal of the platform: a farmer ("user"), a crop
// specialist, or an admin. Stored in PostgreSQL; the Mongo documents
// reference it by UUID only.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Phone        string    `json:"phone"`
	Location     string    `json:"location"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	Role         Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Role holds one of the three platform roles: user, specialist, admin.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Users       []User    `gorm:"foreignKey:RoleID" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
}
