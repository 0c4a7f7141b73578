package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleSuperAdmin is the only admin tier in use.
const RoleSuperAdmin = "SUPER_ADMIN"

// Admin is the privileged identity that moderates testimonials and manages projects.
type Admin struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string    `json:"name" gorm:"size:255;not null"`
	Role         string    `json:"role" gorm:"size:50;not null;default:'SUPER_ADMIN'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Role == "" {
		a.Role = RoleSuperAdmin
	}
	return nil
}

// AdminIdentity is the public projection of an Admin resolved from a token.
type AdminIdentity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

// Identity returns the projection that is safe to hand to callers.
func (a *Admin) Identity() *AdminIdentity {
	return &AdminIdentity{
		ID:    a.ID,
		Email: a.Email,
		Name:  a.Name,
		Role:  a.Role,
	}
}
